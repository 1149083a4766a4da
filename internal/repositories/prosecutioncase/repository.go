package prosecutioncase

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/juniper/pkg/database"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Repository reads the prosecution-case read models
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetByID returns the case deserialized from its persisted payload, or
// nil, nil when no row exists.
func (r *Repository) GetByID(ctx context.Context, caseID string) (*models.ProsecutionCase, error) {
	ctx, span := tracing.StartSpan(ctx, "prosecutioncase.Repository.GetByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "payload", "created_at", "updated_at")
	sb.From("prosecution_cases")
	sb.Where(sb.Equal("id", caseID))

	query, args := sb.Build()
	var row models.CaseRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to get prosecution case")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get prosecution case: %v", err)
	}

	return decode(row), nil
}

// GetBatch returns the cases for the given ids, skipping absent ones. Order
// is not guaranteed.
func (r *Repository) GetBatch(ctx context.Context, caseIDs []string) ([]models.ProsecutionCase, error) {
	ctx, span := tracing.StartSpan(ctx, "prosecutioncase.Repository.GetBatch")
	defer span.End()

	if len(caseIDs) == 0 {
		return []models.ProsecutionCase{}, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "payload", "created_at", "updated_at")
	sb.From("prosecution_cases")
	sb.Where(sb.In("id", sqlbuilder.List(caseIDs)))

	query, args := sb.Build()
	var rows []models.CaseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_count": len(caseIDs)}).Error("Failed to get prosecution case batch")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get prosecution cases: %v", err)
	}

	cases := make([]models.ProsecutionCase, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, *decode(row))
	}
	return cases, nil
}

// decode unwraps the scanned payload. Malformed payloads already failed in
// the jsonb scan, so only the id backfill remains.
func decode(row models.CaseRow) *models.ProsecutionCase {
	pc := row.Payload.GetValue()
	if pc.ID == "" {
		pc.ID = row.ID
	}
	return &pc
}
