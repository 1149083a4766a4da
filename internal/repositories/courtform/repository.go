package courtform

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

// Repository reads the structured court-form association and history rows
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListAssociationsByCase returns the flat (defendant, form, offence) rows
// for a case, optionally narrowed to one form type. Insertion order is kept
// so grouped output is stable.
func (r *Repository) ListAssociationsByCase(ctx context.Context, caseID string, formType *models.FormType) ([]models.CourtFormAssociation, error) {
	ctx, span := tracing.StartSpan(ctx, "courtform.Repository.ListAssociationsByCase")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "court_form_id", "form_type", "case_id", "defendant_id", "offence_id", "created_at")
	sb.From("court_form_associations")
	where := []string{sb.Equal("case_id", caseID)}
	if formType != nil {
		where = append(where, sb.Equal("form_type", string(*formType)))
	}
	sb.Where(where...)
	sb.OrderBy("created_at ASC", "id ASC")

	query, args := sb.Build()
	var rows []models.CourtFormAssociation
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to list court form associations")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court form associations: %v", err)
	}
	return rows, nil
}

// ListAssociationsByForm returns the association rows for one form.
func (r *Repository) ListAssociationsByForm(ctx context.Context, courtFormID string) ([]models.CourtFormAssociation, error) {
	ctx, span := tracing.StartSpan(ctx, "courtform.Repository.ListAssociationsByForm")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "court_form_id", "form_type", "case_id", "defendant_id", "offence_id", "created_at")
	sb.From("court_form_associations")
	sb.Where(sb.Equal("court_form_id", courtFormID))
	sb.OrderBy("created_at ASC", "id ASC")

	query, args := sb.Build()
	var rows []models.CourtFormAssociation
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"court_form_id": courtFormID}).Error("Failed to list court form associations")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court form associations: %v", err)
	}
	return rows, nil
}

// ListHistory returns the change-history entries for a form, oldest first.
func (r *Repository) ListHistory(ctx context.Context, courtFormID string) ([]models.FormHistoryEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "courtform.Repository.ListHistory")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "court_form_id", "status", "changed_by", "created_at")
	sb.From("court_form_history")
	sb.Where(sb.Equal("court_form_id", courtFormID))
	sb.OrderBy("created_at ASC")

	query, args := sb.Build()
	var entries []models.FormHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"court_form_id": courtFormID}).Error("Failed to list court form history")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list court form history: %v", err)
	}
	return entries, nil
}
