package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for malformed engine input.
var (
	ErrInvalidSeverity     = errors.New("cost severity must be between 0 and 4")
	ErrUnknownItemType     = errors.New("unknown item type")
	ErrUnknownStatus       = errors.New("unknown checklist status")
	ErrEmptyCategory       = errors.New("category id is required")
	ErrNegativeMarketValue = errors.New("market value must be a non-negative number")
)

// ValidationError describes which field of an input was rejected.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// NewValidationError creates a ValidationError wrapping a sentinel.
func NewValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks a single checklist result.
func (r ChecklistResult) Validate() error {
	if r.CategoryID == "" {
		return NewValidationError("category_id", r.ItemID, ErrEmptyCategory)
	}
	if !r.ItemType.Valid() {
		return NewValidationError("item_type", string(r.ItemType), ErrUnknownItemType)
	}
	if !r.Status.Valid() {
		return NewValidationError("status", string(r.Status), ErrUnknownStatus)
	}
	if !r.CostSeverity.Valid() {
		return NewValidationError("cost_severity", fmt.Sprintf("%d", r.CostSeverity), ErrInvalidSeverity)
	}
	return nil
}

// Validate checks the whole input. A zero market value is allowed.
func (in ScoreInput) Validate() error {
	if in.MarketValue < 0 || math.IsNaN(in.MarketValue) || math.IsInf(in.MarketValue, 0) {
		return NewValidationError("market_value", fmt.Sprintf("%g", in.MarketValue), ErrNegativeMarketValue)
	}
	for i, item := range in.Checklist {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("checklist[%d] (%s): %w", i, item.ItemID, err)
		}
	}
	return nil
}
