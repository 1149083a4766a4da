package splitmergelink

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

// Repository reads the split/merge link records written by the command side
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListByCaseID returns the link and merge records for a case, oldest first.
func (r *Repository) ListByCaseID(ctx context.Context, caseID string) ([]models.SplitMergeLink, error) {
	ctx, span := tracing.StartSpan(ctx, "splitmergelink.Repository.ListByCaseID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "case_id", "linked_case_id", "link_type", "linked_case_reference", "created_at")
	sb.From("split_merge_links")
	sb.Where(sb.Equal("case_id", caseID))
	sb.OrderBy("created_at ASC")

	query, args := sb.Build()
	var links []models.SplitMergeLink
	if err := r.db.SelectContext(ctx, &links, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to list split/merge links")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list split/merge links: %v", err)
	}
	return links, nil
}
