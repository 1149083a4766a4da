package shareddocument

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

// Repository reads the shared-court-document join rows
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListByScope returns the sharing rows matching the scope, oldest share
// first so the derived index is stable across calls. HearingID and
// UserGroupID always constrain; a non-nil caseID or defendantID must match
// the row exactly.
func (r *Repository) ListByScope(ctx context.Context, hearingID, userGroupID string, caseID, defendantID *string) ([]models.SharedCourtDocumentEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "shareddocument.Repository.ListByScope")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "court_document_id", "hearing_id", "user_group_id", "case_id", "defendant_id", "shared_at")
	sb.From("shared_court_documents")
	where := []string{
		sb.Equal("hearing_id", hearingID),
		sb.Equal("user_group_id", userGroupID),
	}
	if caseID != nil {
		where = append(where, sb.Equal("case_id", *caseID))
	}
	if defendantID != nil {
		where = append(where, sb.Equal("defendant_id", *defendantID))
	}
	sb.Where(where...)
	sb.OrderBy("shared_at ASC")

	query, args := sb.Build()
	var entries []models.SharedCourtDocumentEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"hearing_id": hearingID, "user_group_id": userGroupID}).Error("Failed to list shared court documents")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list shared court documents: %v", err)
	}
	return entries, nil
}
