package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentCategoryUnmarshal(t *testing.T) {
	t.Run("single variant decodes", func(t *testing.T) {
		var doc CourtDocument
		err := json.Unmarshal([]byte(`{
			"courtDocumentId": "doc-1",
			"documentName": "indictment",
			"documentCategory": {"caseDocument": {"prosecutionCaseId": "case-1"}}
		}`), &doc)

		assert.NoError(t, err)
		assert.Equal(t, CategoryCase, doc.Category.Kind())

		caseCat, ok := doc.Category.Case()
		assert.True(t, ok)
		assert.Equal(t, "case-1", caseCat.ProsecutionCaseID)

		_, ok = doc.Category.Defendant()
		assert.False(t, ok)
	})

	t.Run("two variants rejected", func(t *testing.T) {
		var cat DocumentCategory
		err := json.Unmarshal([]byte(`{
			"caseDocument": {"prosecutionCaseId": "case-1"},
			"nowDocument": {"defendantId": "d-1", "hearingId": "h-1"}
		}`), &cat)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one variant")
	})

	t.Run("no variant rejected", func(t *testing.T) {
		var cat DocumentCategory
		err := json.Unmarshal([]byte(`{}`), &cat)
		assert.Error(t, err)
	})
}

func TestDocumentCategoryMarshal(t *testing.T) {
	cat := NewNowOrderCategory(NowOrderCategory{
		DefendantID:        "d-1",
		HearingID:          "h-1",
		ProsecutionCaseIDs: []string{"case-1"},
	})

	raw, err := json.Marshal(cat)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"nowDocument":{"defendantId":"d-1","hearingId":"h-1","prosecutionCaseIds":["case-1"]}}`, string(raw))

	var decoded DocumentCategory
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, CategoryNowOrder, decoded.Kind())
}
