// Package legal turns a vehicle's registration paperwork into the legal flags
// the valuation engine consumes.
package legal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carscope/carscope/pkg/scoring"
)

// DateLayout is the calendar-date format used on forms and the command line.
const DateLayout = "2006-01-02"

// Date is a calendar date that decodes from either "2006-01-02" or RFC 3339.
type Date struct {
	time.Time
}

// ParseDate parses a "2006-01-02" date, falling back to RFC 3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// NewDate returns a pointer to the given calendar date in UTC.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is the registration paperwork captured during an inspection.
// Nil fields are unknown and never raise a flag.
type Record struct {
	RCMismatch       *bool `json:"rc_mismatch,omitempty" yaml:"rc_mismatch,omitempty"`
	Hypothecation    *bool `json:"hypothecation,omitempty" yaml:"hypothecation,omitempty"`
	FitnessValidTill *Date `json:"fitness_valid_till,omitempty" yaml:"fitness_valid_till,omitempty"`
	RoadTaxPaid      *bool `json:"road_tax_paid,omitempty" yaml:"road_tax_paid,omitempty"`
	RoadTaxValidTill *Date `json:"road_tax_valid_till,omitempty" yaml:"road_tax_valid_till,omitempty"`

	// Shown on reports, not scored.
	InsuranceType   string `json:"insurance_type,omitempty" yaml:"insurance_type,omitempty"`
	InsuranceExpiry *Date  `json:"insurance_expiry,omitempty" yaml:"insurance_expiry,omitempty"`
	RCAvailability  string `json:"rc_availability,omitempty" yaml:"rc_availability,omitempty"`
	RCCondition     string `json:"rc_condition,omitempty" yaml:"rc_condition,omitempty"`
	VINEmbossing    string `json:"vin_embossing,omitempty" yaml:"vin_embossing,omitempty"`
	ToBeScrapped    *bool  `json:"to_be_scrapped,omitempty" yaml:"to_be_scrapped,omitempty"`
	DuplicateKey    *bool  `json:"duplicate_key,omitempty" yaml:"duplicate_key,omitempty"`
}

// Derive computes the legal flags as of now.
// A validity date expires once it is strictly before now.
func Derive(rec Record, now time.Time) scoring.LegalFlags {
	return scoring.LegalFlags{
		RCMismatch:              isTrue(rec.RCMismatch),
		HypothecationUnresolved: isTrue(rec.Hypothecation),
		FitnessExpired:          expired(rec.FitnessValidTill, now),
		RoadTaxInvalid:          isFalse(rec.RoadTaxPaid) || expired(rec.RoadTaxValidTill, now),
	}
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }

func expired(d *Date, now time.Time) bool {
	return d != nil && d.Before(now)
}
