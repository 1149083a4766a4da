package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

func TestCaseLSMInfoHandler(t *testing.T) {
	relatedID := "case-related"
	cases := &fakeCases{cases: map[string]*models.ProsecutionCase{
		"case-matched": {ID: "case-matched", Reference: "URN/MATCHED", RelatedCaseID: &relatedID},
		"case-related": {ID: "case-related", Reference: "URN/RELATED"},
	}}

	t.Run("collects matched linked and merged cases", func(t *testing.T) {
		h := NewCaseLSMInfoHandler(
			&fakeCaseDefendants{rows: []models.CaseDefendantRow{
				{CaseID: "case-1", DefendantID: "d-1", MasterDefendantID: "md-1"},
				{CaseID: "case-1", DefendantID: "d-2", MasterDefendantID: "md-1"},
			}},
			&fakeMatches{caseMatches: []models.CaseMatch{
				{ID: "1", MasterDefendantID: "md-1", MatchedCaseID: "case-matched", HearingID: strPtr("h-1")},
				{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-matched", HearingID: strPtr("h-1")},
			}},
			&fakeLinks{links: []models.SplitMergeLink{
				{LinkedCaseID: "case-l", LinkType: models.LinkTypeLink, LinkedCaseReference: "URN/L"},
				{LinkedCaseID: "case-m", LinkType: models.LinkTypeMerge, LinkedCaseReference: "URN/M/M"},
			}},
			cases,
			testLogger(),
		)

		resp, err := h.Handle(context.Background(), queryWith(queries.NameCaseLSMInfo, `{"caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)

		matched, ok := result["matchedDefendantCases"].([]any)
		assert.True(t, ok)
		// Duplicate (master defendant, case, hearing) rows collapse to one.
		assert.Len(t, matched, 1)
		entry := matched[0].(map[string]any)
		assert.Equal(t, "md-1", entry["masterDefendantId"])
		assert.Equal(t, "URN/MATCHED", entry["caseReference"])
		assert.Equal(t, "URN/RELATED", entry["relatedCaseReference"])

		linked := result["linkedCases"].([]any)
		assert.Len(t, linked, 1)
		assert.Equal(t, "URN/L", linked[0].(map[string]any)["caseReference"])

		merged := result["mergedCases"].([]any)
		assert.Len(t, merged, 1)
		assert.Equal(t, "URN/M/M", merged[0].(map[string]any)["caseReference"])
	})

	t.Run("empty collections omit their keys entirely", func(t *testing.T) {
		h := NewCaseLSMInfoHandler(
			&fakeCaseDefendants{},
			&fakeMatches{},
			&fakeLinks{},
			cases,
			testLogger(),
		)

		resp, err := h.Handle(context.Background(), queryWith(queries.NameCaseLSMInfo, `{"caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		assert.NotContains(t, result, "matchedDefendantCases")
		assert.NotContains(t, result, "linkedCases")
		assert.NotContains(t, result, "mergedCases")
	})

	t.Run("matched case lookup cached per request", func(t *testing.T) {
		cached := &fakeCases{cases: map[string]*models.ProsecutionCase{
			"case-matched": {ID: "case-matched", Reference: "URN/MATCHED"},
		}}
		h := NewCaseLSMInfoHandler(
			&fakeCaseDefendants{rows: []models.CaseDefendantRow{
				{CaseID: "case-1", DefendantID: "d-1", MasterDefendantID: "md-1"},
			}},
			&fakeMatches{caseMatches: []models.CaseMatch{
				{ID: "1", MasterDefendantID: "md-1", MatchedCaseID: "case-matched", HearingID: nil},
				{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-matched", HearingID: strPtr("h-1")},
			}},
			&fakeLinks{},
			cached,
			testLogger(),
		)

		_, err := h.Handle(context.Background(), queryWith(queries.NameCaseLSMInfo, `{"caseId":"case-1"}`))

		assert.NoError(t, err)
		// Two surviving match rows for the same case cost one lookup.
		assert.Equal(t, 1, cached.calls)
	})

	t.Run("missing caseId is a client error", func(t *testing.T) {
		h := NewCaseLSMInfoHandler(&fakeCaseDefendants{}, &fakeMatches{}, &fakeLinks{}, cases, testLogger())

		_, err := h.Handle(context.Background(), queryWith(queries.NameCaseLSMInfo, `{}`))

		assert.Error(t, err)
	})
}
