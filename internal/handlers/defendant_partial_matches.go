package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/jsontree"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type partialMatchesPayload struct {
	CaseID    string                       `json:"caseId" validate:"required"`
	Page      int                          `json:"page,omitempty"`
	PageSize  int                          `json:"pageSize,omitempty"`
	SortField models.PartialMatchSortField `json:"sortField,omitempty"`
	SortOrder models.PartialMatchSortOrder `json:"sortOrder,omitempty"`
}

// DefendantPartialMatchesHandler serves
// progression.query.defendant-partial-matches: the paged candidate listing.
// The total is always returned; the result list is omitted entirely when
// the requested page lies past the end, and no page query is issued.
type DefendantPartialMatchesHandler struct {
	matches         MatchReader
	converter       *jsontree.Converter
	defaultPageSize int
	logger          ectologger.Logger
}

func NewDefendantPartialMatchesHandler(matches MatchReader, converter *jsontree.Converter, defaultPageSize int, logger ectologger.Logger) *DefendantPartialMatchesHandler {
	return &DefendantPartialMatchesHandler{
		matches:         matches,
		converter:       converter,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

func (h *DefendantPartialMatchesHandler) Name() string {
	return queries.NameDefendantPartialMatch
}

func (h *DefendantPartialMatchesHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.DefendantPartialMatchesHandler.Handle")
	defer span.End()

	var payload partialMatchesPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	total, err := h.matches.CountByCase(ctx, payload.CaseID)
	if err != nil {
		return envelope.Response{}, err
	}

	result := map[string]any{"totalResults": total}

	offset, limit := aggregation.PageRequest{Page: payload.Page, PageSize: payload.PageSize}.Resolve(h.defaultPageSize)
	if !aggregation.InRange(offset, total) {
		return envelope.NewResponse(q, result)
	}

	ordering := models.ResolveOrdering(payload.SortField, payload.SortOrder)
	rows, err := h.matches.ListPage(ctx, payload.CaseID, ordering, offset, limit)
	if err != nil {
		return envelope.Response{}, err
	}

	matched := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		// The stored payload carries the nested defendants-matched list
		// verbatim; it passes through as a tree, never re-derived.
		entry, err := h.converter.ParseObject(string(row.Payload))
		if err != nil {
			h.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"match_id": row.ID}).Error("Failed to parse partial match payload")
			return envelope.Response{}, err
		}
		matched = append(matched, entry)
	}
	result["matchedDefendants"] = matched

	return envelope.NewResponse(q, result)
}
