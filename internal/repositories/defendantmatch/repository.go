package defendantmatch

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

// Repository reads the defendant partial-match candidates and the
// cross-case match rows used by the case-linking view.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// CountByCase returns the total partial-match candidates for a case,
// independent of any page selection.
func (r *Repository) CountByCase(ctx context.Context, caseID string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "defendantmatch.Repository.CountByCase")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("defendant_partial_matches")
	sb.Where(sb.Equal("case_id", caseID))

	query, args := sb.Build()
	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to count defendant partial matches")
		return 0, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to count defendant partial matches: %v", err)
	}
	return total, nil
}

// ListPage returns one page of partial-match candidates under one of the
// four fixed orderings. Ties resolve on id so pages never overlap.
func (r *Repository) ListPage(ctx context.Context, caseID string, ordering models.PartialMatchOrdering, offset, limit int) ([]models.DefendantPartialMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "defendantmatch.Repository.ListPage")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "case_id", "master_defendant_id", "defendant_name", "case_received_date", "payload")
	sb.From("defendant_partial_matches")
	sb.Where(sb.Equal("case_id", caseID))

	switch ordering {
	case models.OrderByNameAsc:
		sb.OrderBy("defendant_name ASC", "id ASC")
	case models.OrderByNameDesc:
		sb.OrderBy("defendant_name DESC", "id ASC")
	case models.OrderByDateAsc:
		sb.OrderBy("case_received_date ASC", "id ASC")
	default:
		sb.OrderBy("case_received_date DESC", "id ASC")
	}
	sb.Offset(offset)
	sb.Limit(limit)

	query, args := sb.Build()
	var matches []models.DefendantPartialMatch
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID, "offset": offset, "limit": limit}).Error("Failed to list defendant partial matches")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list defendant partial matches: %v", err)
	}
	return matches, nil
}

// ListMatchesByMasterDefendantIDs returns the cross-case match rows for the
// given master defendant identities, excluding rows that point back at the
// source case itself.
func (r *Repository) ListMatchesByMasterDefendantIDs(ctx context.Context, masterDefendantIDs []string, excludeCaseID string) ([]models.CaseMatch, error) {
	ctx, span := tracing.StartSpan(ctx, "defendantmatch.Repository.ListMatchesByMasterDefendantIDs")
	defer span.End()

	if len(masterDefendantIDs) == 0 {
		return []models.CaseMatch{}, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "master_defendant_id", "matched_case_id", "hearing_id")
	sb.From("case_matches")
	sb.Where(
		sb.In("master_defendant_id", sqlbuilder.List(masterDefendantIDs)),
		sb.NotEqual("matched_case_id", excludeCaseID),
	)
	sb.OrderBy("master_defendant_id ASC", "matched_case_id ASC")

	query, args := sb.Build()
	var matches []models.CaseMatch
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"master_defendant_count": len(masterDefendantIDs)}).Error("Failed to list case matches")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list case matches: %v", err)
	}
	return matches, nil
}
