// Package inspection manages inspection records: drafting, scoring on every
// save, finalizing into immutable revisions, and public report shares.
package inspection

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/legal"
	"github.com/carscope/carscope/pkg/scoring"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrFinalized   = errors.New("inspection is finalized")
	ErrInvalidForm = errors.New("invalid inspection form")
)

// Status is the lifecycle state of an inspection.
type Status string

const (
	StatusDraft Status = "Draft"
	StatusFinal Status = "Final"
)

// Vehicle describes the car under inspection.
type Vehicle struct {
	RegNo    string `json:"reg_no,omitempty" yaml:"reg_no,omitempty"`
	Make     string `json:"make,omitempty" yaml:"make,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Variant  string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Year     int    `json:"year,omitempty" yaml:"year,omitempty"`
	Mileage  int    `json:"mileage,omitempty" yaml:"mileage,omitempty"` // km
	FuelType string `json:"fuel_type,omitempty" yaml:"fuel_type,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Title is the one-line label used on reports, e.g. "MH12AB1234 · Maruti Swift VXI".
func (v Vehicle) Title() string {
	name := strings.Join(nonEmpty(v.Make, v.Model, v.Variant), " ")
	return strings.Join(nonEmpty(v.RegNo, name), " · ")
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Form is everything an inspector edits. A nil Template means the default checklist.
type Form struct {
	Vehicle      Vehicle                `json:"vehicle" yaml:"vehicle"`
	MarketValue  float64                `json:"market_value" yaml:"market_value"`
	Template     *checklist.Template    `json:"template,omitempty" yaml:"template,omitempty"`
	Observations checklist.Observations `json:"observations" yaml:"observations"`
	Legal        legal.Record           `json:"legal" yaml:"legal"`
}

// Inspection is a stored inspection with its latest score snapshot.
type Inspection struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	InspectorID *string `json:"inspector_id,omitempty"`
	Code        string  `json:"code"`
	Status      Status  `json:"status"`
	Form
	Score     *scoring.ScoreOutput `json:"score"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Revision is the metadata row of a finalized snapshot.
type Revision struct {
	ID             string                 `json:"id"`
	InspectionID   string                 `json:"inspection_id"`
	Number         int                    `json:"revision"`
	HealthScore    int                    `json:"health_score"`
	Recommendation scoring.Recommendation `json:"recommendation"`
	StorageRef     string                 `json:"storage_ref"`
	CreatedAt      time.Time              `json:"created_at"`
}

// RevisionSnapshot is the immutable blob written when an inspection is finalized.
type RevisionSnapshot struct {
	InspectionID string               `json:"inspection_id"`
	Code         string               `json:"code"`
	Revision     int                  `json:"revision"`
	Form         Form                 `json:"form"`
	Flags        scoring.LegalFlags   `json:"legal_flags"`
	Output       *scoring.ScoreOutput `json:"output"`
	Grade        scoring.Grade        `json:"grade"`
	FinalizedAt  time.Time            `json:"finalized_at"`
}

// Share grants public read access to an inspection's report.
type Share struct {
	ID           string    `json:"id"`
	InspectionID string    `json:"inspection_id"`
	Token        string    `json:"token"`
	Profile      string    `json:"profile"`
	AllowPDF     bool      `json:"allow_pdf"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultShareProfile is the report profile used when none is requested.
const DefaultShareProfile = "full"

// NewCode returns a human-friendly inspection code such as "INS-3F9A12BC".
func NewCode() string {
	return "INS-" + strings.ToUpper(hexID()[:8])
}

// NewShareToken returns a 16 character hex token for public links.
func NewShareToken() string {
	return hexID()[:16]
}

func hexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
