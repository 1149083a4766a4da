package casedefendant

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/juniper/pkg/database"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Repository reads the case-to-master-defendant mapping rows
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListByCaseID returns the defendant identity rows for a case.
func (r *Repository) ListByCaseID(ctx context.Context, caseID string) ([]models.CaseDefendantRow, error) {
	ctx, span := tracing.StartSpan(ctx, "casedefendant.Repository.ListByCaseID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("case_id", "defendant_id", "master_defendant_id")
	sb.From("case_defendants")
	sb.Where(sb.Equal("case_id", caseID))
	sb.OrderBy("defendant_id ASC")

	query, args := sb.Build()
	var rows []models.CaseDefendantRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to list case defendants")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list case defendants: %v", err)
	}
	return rows, nil
}
