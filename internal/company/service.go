// Package company manages the organisations that own inspections and the
// inspectors who work for them.
package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidName      = errors.New("company name is required")
	ErrInvalidEmail     = errors.New("invalid inspector email")
	ErrInvalidRole      = errors.New("invalid inspector role")
	ErrExists           = errors.New("company already exists")
	ErrForeignInspector = errors.New("inspector does not belong to company")
	ErrReadOnly         = errors.New("inspector role cannot edit inspections")
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Role controls what an inspector may do within a company.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
	RoleViewer    Role = "viewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInspector, RoleViewer:
		return true
	}
	return false
}

// CanEdit reports whether the role may create and modify inspections.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleInspector
}

// Company is a dealership or inspection agency.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Inspector is a member of a company.
type Inspector struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service provides company and inspector management backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new company Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateCompany creates a company with the given name. Names are unique;
// a taken name returns ErrExists.
func (s *Service) CreateCompany(ctx context.Context, name string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	c := &Company{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO companies (name) VALUES ($1)
		 RETURNING id, name, created_at`,
		name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// GetCompany looks up a company by ID.
func (s *Service) GetCompany(ctx context.Context, id string) (*Company, error) {
	c := &Company{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM companies WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	return c, nil
}

// ListCompanies returns all companies ordered by name.
func (s *Service) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// NormalizeInspector validates an inspector's email and role, filling the
// default role when empty.
func NormalizeInspector(email string, role Role) (string, Role, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if role == "" {
		role = RoleInspector
	}
	if !role.Valid() {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return strings.ToLower(addr.Address), role, nil
}

// AddInspector creates or updates an inspector in a company. Re-adding an
// existing email updates the display name and role.
func (s *Service) AddInspector(ctx context.Context, companyID, email, displayName string, role Role) (*Inspector, error) {
	email, role, err := NormalizeInspector(email, role)
	if err != nil {
		return nil, err
	}
	in := &Inspector{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO inspectors (company_id, email, display_name, role)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (company_id, email) DO UPDATE
		   SET display_name = EXCLUDED.display_name,
		       role = EXCLUDED.role
		 RETURNING id, company_id, email, display_name, role, created_at`,
		companyID, email, displayName, string(role),
	).Scan(&in.ID, &in.CompanyID, &in.Email, &in.DisplayName, &in.Role, &in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add inspector %s: %w", email, err)
	}
	return in, nil
}

// GetInspector looks up an inspector within a company. Inspectors of other
// companies are reported as ErrNotFound.
func (s *Service) GetInspector(ctx context.Context, companyID, inspectorID string) (*Inspector, error) {
	in := &Inspector{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_id, email, display_name, role, created_at
		 FROM inspectors WHERE id = $1 AND company_id = $2`,
		inspectorID, companyID,
	).Scan(&in.ID, &in.CompanyID, &in.Email, &in.DisplayName, &in.Role, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get inspector %s: %w", inspectorID, err)
	}
	return in, nil
}

// Authorize checks that an inspection may be attributed to the company and,
// when inspectorID is set, to that inspector. The inspector must belong to
// the company and hold a role that can edit.
func (s *Service) Authorize(ctx context.Context, companyID, inspectorID string) error {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return err
	}
	if inspectorID == "" {
		return nil
	}
	in, err := s.GetInspector(ctx, companyID, inspectorID)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrForeignInspector, inspectorID)
	}
	if err != nil {
		return err
	}
	return CheckRole(in.Role)
}

// CheckRole returns ErrReadOnly for roles that may not edit inspections.
func CheckRole(role Role) error {
	if !role.CanEdit() {
		return fmt.Errorf("%w: %s", ErrReadOnly, role)
	}
	return nil
}

// ListInspectors returns the inspectors of a company ordered by email.
func (s *Service) ListInspectors(ctx context.Context, companyID string) ([]Inspector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_id, email, display_name, role, created_at
		 FROM inspectors WHERE company_id = $1 ORDER BY email`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inspectors: %w", err)
	}
	defer rows.Close()

	var inspectors []Inspector
	for rows.Next() {
		var in Inspector
		if err := rows.Scan(&in.ID, &in.CompanyID, &in.Email, &in.DisplayName, &in.Role, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inspector: %w", err)
		}
		inspectors = append(inspectors, in)
	}
	return inspectors, rows.Err()
}
