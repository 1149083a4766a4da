package handlers

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type sharedCourtDocumentsPayload struct {
	HearingID   string  `json:"hearingId" validate:"required"`
	UserGroupID string  `json:"userGroupId" validate:"required"`
	CaseID      *string `json:"caseId,omitempty"`
	DefendantID *string `json:"defendantId,omitempty"`
}

type sharedCourtDocumentsResult struct {
	DocumentIndices []aggregation.DocumentIndexEntry `json:"documentIndices"`
}

// SearchSharedCourtDocumentsHandler serves
// progression.query.shared-court-documents: join-record lookup by sharing
// scope, batched document resolution, classification and the defendant
// relevance filter. The documentIndices key is always present.
type SearchSharedCourtDocumentsHandler struct {
	shared     SharedDocumentLister
	documents  DocumentReader
	classifier *aggregation.Classifier
	batchSize  int
	logger     ectologger.Logger
}

func NewSearchSharedCourtDocumentsHandler(shared SharedDocumentLister, documents DocumentReader, classifier *aggregation.Classifier, batchSize int, logger ectologger.Logger) *SearchSharedCourtDocumentsHandler {
	return &SearchSharedCourtDocumentsHandler{
		shared:     shared,
		documents:  documents,
		classifier: classifier,
		batchSize:  batchSize,
		logger:     logger,
	}
}

func (h *SearchSharedCourtDocumentsHandler) Name() string {
	return queries.NameSharedCourtDocuments
}

func (h *SearchSharedCourtDocumentsHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.SearchSharedCourtDocumentsHandler.Handle")
	defer span.End()

	var payload sharedCourtDocumentsPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}
	if payload.CaseID == nil && payload.DefendantID == nil {
		return envelope.Response{}, httperror.NewHTTPError(http.StatusBadRequest, "either caseId or defendantId is required")
	}

	entries, err := h.shared.ListByScope(ctx, payload.HearingID, payload.UserGroupID, payload.CaseID, payload.DefendantID)
	if err != nil {
		return envelope.Response{}, err
	}

	documentIDs := aggregation.DistinctStrings(ectolinq.Map(entries, func(entry models.SharedCourtDocumentEntry) string {
		return entry.CourtDocumentID
	}))

	defendantID := ""
	if payload.DefendantID != nil {
		defendantID = *payload.DefendantID
	}

	indices := make([]aggregation.DocumentIndexEntry, 0, len(documentIDs))
	for _, batch := range aggregation.Batches(documentIDs, h.batchSize) {
		docs, err := h.documents.GetBatch(ctx, batch)
		if err != nil {
			return envelope.Response{}, err
		}
		for _, doc := range docs {
			index, err := h.classifier.Classify(ctx, doc)
			if err != nil {
				return envelope.Response{}, err
			}
			if !aggregation.RelevantToDefendant(index, defendantID) {
				continue
			}
			indices = append(indices, index)
		}
	}

	return envelope.NewResponse(q, sharedCourtDocumentsResult{DocumentIndices: indices})
}
