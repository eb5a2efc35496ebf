package inspection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/scoring"
	"github.com/carscope/carscope/pkg/surface"
)

// Roster vets who an inspection is attributed to before it is stored.
type Roster interface {
	Authorize(ctx context.Context, companyID, inspectorID string) error
}

// Service stores inspections in Postgres and revision blobs in a BlobStore.
type Service struct {
	db      *sql.DB
	storage BlobStore
	scorer  Scorer
	roster  Roster
	now     func() time.Time
}

// NewService creates a new inspection Service. A nil roster skips
// attribution checks and leaves them to the foreign keys.
func NewService(db *sql.DB, storage BlobStore, scorer Scorer, roster Roster) *Service {
	return &Service{
		db:      db,
		storage: storage,
		scorer:  scorer,
		roster:  roster,
		now:     time.Now,
	}
}

// foreignKeyViolation is the Postgres SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

const inspectionColumns = `id, company_id, inspector_id, code, status, vehicle, market_value, template,
	observations, legal, health_score, recommendation, exposure_percent, total_repair_min,
	total_repair_max, recommendation_reasons, caps, category_totals, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInspection(row rowScanner) (*Inspection, error) {
	var ins Inspection
	var out scoring.ScoreOutput
	var vehicle, tmpl, obs, legalJSON, totals []byte
	err := row.Scan(
		&ins.ID, &ins.CompanyID, &ins.InspectorID, &ins.Code, &ins.Status,
		&vehicle, &ins.MarketValue, &tmpl, &obs, &legalJSON,
		&out.HealthScore, &out.Recommendation, &out.ExposurePercent,
		&out.TotalRepairMin, &out.TotalRepairMax,
		pq.Array(&out.RecommendationReasons), pq.Array(&out.Caps), &totals,
		&ins.CreatedAt, &ins.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(vehicle, &ins.Vehicle); err != nil {
		return nil, fmt.Errorf("decode vehicle: %w", err)
	}
	if len(tmpl) > 0 {
		if err := json.Unmarshal(tmpl, &ins.Template); err != nil {
			return nil, fmt.Errorf("decode template: %w", err)
		}
	}
	if err := json.Unmarshal(obs, &ins.Observations); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}
	if err := json.Unmarshal(legalJSON, &ins.Legal); err != nil {
		return nil, fmt.Errorf("decode legal: %w", err)
	}
	if err := json.Unmarshal(totals, &out.CategoryTotals); err != nil {
		return nil, fmt.Errorf("decode category totals: %w", err)
	}
	ins.Score = &out
	return &ins, nil
}

// formParams encodes the jsonb columns of a form in column order:
// vehicle, market_value, template, observations, legal.
func formParams(f Form) ([]any, error) {
	vehicle, err := json.Marshal(f.Vehicle)
	if err != nil {
		return nil, fmt.Errorf("marshal vehicle: %w", err)
	}
	var tmpl any
	if f.Template != nil {
		b, err := json.Marshal(f.Template)
		if err != nil {
			return nil, fmt.Errorf("marshal template: %w", err)
		}
		tmpl = b
	}
	obs := f.Observations
	if obs == nil {
		obs = checklist.Observations{}
	}
	obsJSON, err := json.Marshal(obs)
	if err != nil {
		return nil, fmt.Errorf("marshal observations: %w", err)
	}
	legalJSON, err := json.Marshal(f.Legal)
	if err != nil {
		return nil, fmt.Errorf("marshal legal: %w", err)
	}
	return []any{vehicle, f.MarketValue, tmpl, obsJSON, legalJSON}, nil
}

// scoreParams encodes the score columns in column order.
func scoreParams(out *scoring.ScoreOutput) ([]any, error) {
	totals, err := json.Marshal(out.CategoryTotals)
	if err != nil {
		return nil, fmt.Errorf("marshal category totals: %w", err)
	}
	return []any{
		out.HealthScore, string(out.Recommendation), out.ExposurePercent,
		out.TotalRepairMin, out.TotalRepairMax,
		pq.Array(out.RecommendationReasons), pq.Array(out.Caps), totals,
	}, nil
}

// Create scores the form and stores it as a new draft inspection.
func (s *Service) Create(ctx context.Context, companyID, inspectorID string, form Form) (*Inspection, error) {
	if s.roster != nil {
		if err := s.roster.Authorize(ctx, companyID, inspectorID); err != nil {
			return nil, fmt.Errorf("create inspection: %w", err)
		}
	}
	eval, err := Evaluate(s.scorer, form, s.now())
	if err != nil {
		return nil, err
	}
	fp, err := formParams(form)
	if err != nil {
		return nil, err
	}
	sp, err := scoreParams(eval.Output)
	if err != nil {
		return nil, err
	}

	args := append([]any{companyID, nilIfEmpty(inspectorID), NewCode()}, fp...)
	args = append(args, sp...)
	ins, err := scanInspection(s.db.QueryRowContext(ctx,
		`INSERT INTO inspections (company_id, inspector_id, code,
		    vehicle, market_value, template, observations, legal,
		    health_score, recommendation, exposure_percent, total_repair_min, total_repair_max,
		    recommendation_reasons, caps, category_totals)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+inspectionColumns,
		args...,
	))
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("create inspection: company or inspector: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("create inspection: %w", err)
	}
	return ins, nil
}

// Get returns an inspection by ID.
func (s *Service) Get(ctx context.Context, id string) (*Inspection, error) {
	ins, err := scanInspection(s.db.QueryRowContext(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get inspection %s: %w", id, err)
	}
	return ins, nil
}

// List returns a company's inspections, most recently updated first.
func (s *Service) List(ctx context.Context, companyID string) ([]Inspection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+inspectionColumns+` FROM inspections
		 WHERE company_id = $1 ORDER BY updated_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	var out []Inspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		out = append(out, *ins)
	}
	return out, rows.Err()
}

// Save replaces a draft's form and recomputes its score.
// Finalized inspections must be reopened first.
func (s *Service) Save(ctx context.Context, id string, form Form) (*Inspection, error) {
	eval, err := Evaluate(s.scorer, form, s.now())
	if err != nil {
		return nil, err
	}
	fp, err := formParams(form)
	if err != nil {
		return nil, err
	}
	sp, err := scoreParams(eval.Output)
	if err != nil {
		return nil, err
	}

	args := append([]any{id}, fp...)
	args = append(args, sp...)
	ins, err := scanInspection(s.db.QueryRowContext(ctx,
		`UPDATE inspections SET
		    vehicle = $2, market_value = $3, template = $4, observations = $5, legal = $6,
		    health_score = $7, recommendation = $8, exposure_percent = $9,
		    total_repair_min = $10, total_repair_max = $11,
		    recommendation_reasons = $12, caps = $13, category_totals = $14,
		    updated_at = now()
		 WHERE id = $1 AND status = 'Draft'
		 RETURNING `+inspectionColumns,
		args...,
	))
	if errors.Is(err, ErrNotFound) {
		// Either missing or not a draft.
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("save inspection %s: %w", id, ErrFinalized)
	}
	if err != nil {
		return nil, fmt.Errorf("save inspection %s: %w", id, err)
	}
	return ins, nil
}

// Finalize rescores the stored form, writes revision n+1 as an immutable
// snapshot and marks the inspection Final.
func (s *Service) Finalize(ctx context.Context, id string) (*Revision, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ins, err := scanInspection(tx.QueryRowContext(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("finalize inspection %s: %w", id, err)
	}
	if ins.Status == StatusFinal {
		return nil, fmt.Errorf("finalize inspection %s: %w", id, ErrFinalized)
	}

	now := s.now()
	eval, err := Evaluate(s.scorer, ins.Form, now)
	if err != nil {
		return nil, err
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(revision), 0) + 1 FROM inspection_revisions WHERE inspection_id = $1`, id,
	).Scan(&next); err != nil {
		return nil, fmt.Errorf("next revision: %w", err)
	}

	snap := RevisionSnapshot{
		InspectionID: ins.ID,
		Code:         ins.Code,
		Revision:     next,
		Form:         ins.Form,
		Flags:        eval.Flags,
		Output:       eval.Output,
		Grade:        scoring.HealthScoreToGrade(eval.Output.HealthScore),
		FinalizedAt:  now.UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal revision: %w", err)
	}
	revID := uuid.NewString()
	ref := revisionKey(ins.CompanyID, revID)
	if err := s.storage.Put(ctx, ref, data); err != nil {
		return nil, fmt.Errorf("put revision blob: %w", err)
	}

	rev := &Revision{}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO inspection_revisions (id, inspection_id, revision, health_score, recommendation, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, inspection_id, revision, health_score, recommendation, storage_ref, created_at`,
		revID, id, next, eval.Output.HealthScore, string(eval.Output.Recommendation), ref,
	).Scan(&rev.ID, &rev.InspectionID, &rev.Number, &rev.HealthScore, &rev.Recommendation, &rev.StorageRef, &rev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert revision row: %w", err)
	}

	sp, err := scoreParams(eval.Output)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE inspections SET status = 'Final',
		    health_score = $2, recommendation = $3, exposure_percent = $4,
		    total_repair_min = $5, total_repair_max = $6,
		    recommendation_reasons = $7, caps = $8, category_totals = $9,
		    updated_at = now()
		 WHERE id = $1`,
		append([]any{id}, sp...)...,
	); err != nil {
		return nil, fmt.Errorf("mark final: %w", err)
	}

	summary := summarize(ins.Code, eval, ins.Form)
	if b, err := json.Marshal(summary); err == nil {
		if err := s.storage.Put(ctx, reportKey(ins.CompanyID, id, next), b); err != nil {
			slog.Warn("store report summary", "inspection_id", id, "revision", next, "err", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return rev, nil
}

// Reopen returns a finalized inspection to Draft. Existing revisions are kept.
func (s *Service) Reopen(ctx context.Context, id string) (*Inspection, error) {
	ins, err := scanInspection(s.db.QueryRowContext(ctx,
		`UPDATE inspections SET status = 'Draft', updated_at = now()
		 WHERE id = $1 RETURNING `+inspectionColumns, id))
	if err != nil {
		return nil, fmt.Errorf("reopen inspection %s: %w", id, err)
	}
	return ins, nil
}

// ListRevisions returns an inspection's revisions in ascending order.
func (s *Service) ListRevisions(ctx context.Context, inspectionID string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, inspection_id, revision, health_score, recommendation, storage_ref, created_at
		 FROM inspection_revisions WHERE inspection_id = $1 ORDER BY revision`,
		inspectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.InspectionID, &r.Number, &r.HealthScore, &r.Recommendation, &r.StorageRef, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// GetRevision loads the immutable snapshot of revision n.
func (s *Service) GetRevision(ctx context.Context, inspectionID string, n int) (*RevisionSnapshot, error) {
	var ref string
	err := s.db.QueryRowContext(ctx,
		`SELECT storage_ref FROM inspection_revisions
		 WHERE inspection_id = $1 AND revision = $2`,
		inspectionID, n,
	).Scan(&ref)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d of %s: %w", n, inspectionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}

	data, err := s.storage.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load revision blob: %w", err)
	}
	var snap RevisionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode revision: %w", err)
	}
	return &snap, nil
}

// CreateShare returns the inspection's share, minting a token on first use.
// Later calls keep the token and apply the requested profile and PDF setting.
func (s *Service) CreateShare(ctx context.Context, inspectionID, profile string, allowPDF bool) (*Share, error) {
	if _, err := s.Get(ctx, inspectionID); err != nil {
		return nil, err
	}
	if profile == "" {
		profile = DefaultShareProfile
	}

	sh, err := scanShare(s.db.QueryRowContext(ctx,
		`SELECT id, inspection_id, token, profile, allow_pdf, created_at
		 FROM report_shares WHERE inspection_id = $1 ORDER BY created_at LIMIT 1`,
		inspectionID,
	))
	if err == nil {
		sh, err = scanShare(s.db.QueryRowContext(ctx,
			`UPDATE report_shares SET profile = $2, allow_pdf = $3 WHERE id = $1
			 RETURNING id, inspection_id, token, profile, allow_pdf, created_at`,
			sh.ID, profile, allowPDF,
		))
		if err != nil {
			return nil, fmt.Errorf("update share: %w", err)
		}
		return sh, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find share: %w", err)
	}

	sh, err = scanShare(s.db.QueryRowContext(ctx,
		`INSERT INTO report_shares (inspection_id, token, profile, allow_pdf)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, inspection_id, token, profile, allow_pdf, created_at`,
		inspectionID, NewShareToken(), profile, allowPDF,
	))
	if err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return sh, nil
}

// ResolveShare looks up a share token and the inspection it exposes.
func (s *Service) ResolveShare(ctx context.Context, token string) (*Share, *Inspection, error) {
	sh, err := scanShare(s.db.QueryRowContext(ctx,
		`SELECT id, inspection_id, token, profile, allow_pdf, created_at
		 FROM report_shares WHERE token = $1`,
		token,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve share: %w", err)
	}
	ins, err := s.Get(ctx, sh.InspectionID)
	if err != nil {
		return nil, nil, err
	}
	return sh, ins, nil
}

func scanShare(row rowScanner) (*Share, error) {
	sh := &Share{}
	err := row.Scan(&sh.ID, &sh.InspectionID, &sh.Token, &sh.Profile, &sh.AllowPDF, &sh.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// Summary returns the shareable report digest of an inspection. Finalized
// inspections use the summary stored with their latest revision when present.
func (s *Service) Summary(ctx context.Context, ins *Inspection) (*surface.Summary, error) {
	if ins.Status == StatusFinal {
		var latest int
		err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(revision), 0) FROM inspection_revisions WHERE inspection_id = $1`, ins.ID,
		).Scan(&latest)
		if err != nil {
			return nil, fmt.Errorf("latest revision: %w", err)
		}
		if latest > 0 {
			data, err := s.storage.Get(ctx, reportKey(ins.CompanyID, ins.ID, latest))
			if err == nil {
				var summary surface.Summary
				if err := json.Unmarshal(data, &summary); err == nil {
					return &summary, nil
				}
			} else if !errors.Is(err, ErrBlobNotFound) {
				slog.Warn("load report summary", "inspection_id", ins.ID, "err", err)
			}
		}
	}
	return RenderSummary(s.scorer, ins, s.now())
}

// RenderSummary renders an inspection's summary from its form, preferring the
// stored score snapshot over a fresh evaluation.
func RenderSummary(scorer Scorer, ins *Inspection, now time.Time) (*surface.Summary, error) {
	eval, err := Evaluate(scorer, ins.Form, now)
	if err != nil {
		return nil, err
	}
	if ins.Score != nil {
		eval.Output = ins.Score
	}
	return summarize(ins.Code, eval, ins.Form), nil
}

func summarize(code string, eval *Evaluation, form Form) *surface.Summary {
	summary := (&surface.MarkdownRenderer{}).BuildSummary(eval.Report(form))
	if code != "" {
		summary.Title = code + " · " + summary.Title
	}
	return &summary
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
