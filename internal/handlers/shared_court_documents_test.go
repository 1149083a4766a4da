package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

func TestSearchSharedCourtDocumentsHandler(t *testing.T) {
	classifier := aggregation.NewClassifier(nil, nil)

	t.Run("requires a case or defendant scope", func(t *testing.T) {
		h := NewSearchSharedCourtDocumentsHandler(&fakeSharedDocuments{}, &fakeDocuments{}, classifier, 50, testLogger())

		_, err := h.Handle(context.Background(), queryWith(queries.NameSharedCourtDocuments,
			`{"hearingId":"h-1","userGroupId":"g-1"}`))

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("classifies shared documents and always returns the indices key", func(t *testing.T) {
		shared := &fakeSharedDocuments{entries: []models.SharedCourtDocumentEntry{
			{CourtDocumentID: "doc-1"},
			{CourtDocumentID: "doc-1"},
			{CourtDocumentID: "doc-2"},
		}}
		documents := &fakeDocuments{byID: map[string]models.CourtDocument{
			"doc-1": {ID: "doc-1", Category: models.NewCaseCategory(models.CaseCategory{ProsecutionCaseID: "case-1"})},
			"doc-2": {ID: "doc-2", Category: models.NewDefendantCategory(models.DefendantCategory{
				ProsecutionCaseID: "case-1",
				DefendantIDs:      []string{"d-1"},
			})},
		}}
		h := NewSearchSharedCourtDocumentsHandler(shared, documents, classifier, 50, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameSharedCourtDocuments,
			`{"hearingId":"h-1","userGroupId":"g-1","caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		indices := result["documentIndices"].([]any)
		// doc-1 shared twice resolves once.
		assert.Len(t, indices, 2)
		assert.Len(t, documents.batchCalls, 1)
		assert.ElementsMatch(t, []string{"doc-1", "doc-2"}, documents.batchCalls[0])
	})

	t.Run("defendant scope filters defendant-level documents", func(t *testing.T) {
		shared := &fakeSharedDocuments{entries: []models.SharedCourtDocumentEntry{
			{CourtDocumentID: "doc-case"},
			{CourtDocumentID: "doc-mine"},
			{CourtDocumentID: "doc-other"},
		}}
		documents := &fakeDocuments{byID: map[string]models.CourtDocument{
			"doc-case": {ID: "doc-case", Category: models.NewCaseCategory(models.CaseCategory{ProsecutionCaseID: "case-1"})},
			"doc-mine": {ID: "doc-mine", Category: models.NewDefendantCategory(models.DefendantCategory{
				ProsecutionCaseID: "case-1",
				DefendantIDs:      []string{"d-1"},
			})},
			"doc-other": {ID: "doc-other", Category: models.NewNowOrderCategory(models.NowOrderCategory{
				DefendantID: "d-2",
				HearingID:   "h-1",
			})},
		}}
		h := NewSearchSharedCourtDocumentsHandler(shared, documents, classifier, 50, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameSharedCourtDocuments,
			`{"hearingId":"h-1","userGroupId":"g-1","defendantId":"d-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		indices := result["documentIndices"].([]any)
		// Case-level stays, the other defendant's NOW order is filtered.
		assert.Len(t, indices, 2)
		ids := []string{
			indices[0].(map[string]any)["courtDocumentId"].(string),
			indices[1].(map[string]any)["courtDocumentId"].(string),
		}
		assert.ElementsMatch(t, []string{"doc-case", "doc-mine"}, ids)
	})

	t.Run("document lookups run in batches", func(t *testing.T) {
		entries := make([]models.SharedCourtDocumentEntry, 0, 5)
		byID := make(map[string]models.CourtDocument, 5)
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			entries = append(entries, models.SharedCourtDocumentEntry{CourtDocumentID: id})
			byID[id] = models.CourtDocument{ID: id, Category: models.NewCaseCategory(models.CaseCategory{ProsecutionCaseID: "case-1"})}
		}
		documents := &fakeDocuments{byID: byID}
		h := NewSearchSharedCourtDocumentsHandler(&fakeSharedDocuments{entries: entries}, documents, classifier, 2, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameSharedCourtDocuments,
			`{"hearingId":"h-1","userGroupId":"g-1","caseId":"case-1"}`))

		assert.NoError(t, err)
		assert.Len(t, documents.batchCalls, 3)
		result := decodePayload(t, resp)
		assert.Len(t, result["documentIndices"], 5)
	})

	t.Run("no shared entries yields an empty indices list", func(t *testing.T) {
		h := NewSearchSharedCourtDocumentsHandler(&fakeSharedDocuments{}, &fakeDocuments{}, classifier, 50, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameSharedCourtDocuments,
			`{"hearingId":"h-1","userGroupId":"g-1","caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		indices, ok := result["documentIndices"].([]any)
		assert.True(t, ok)
		assert.Empty(t, indices)
	})
}
