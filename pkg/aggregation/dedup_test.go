package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
)

func strPtr(s string) *string {
	return &s
}

func TestDedupCaseMatches_CollapsesSamePair(t *testing.T) {
	matches := []models.CaseMatch{
		{ID: "1", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: strPtr("h-1")},
		{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: strPtr("h-1")},
		{ID: "3", MasterDefendantID: "md-2", MatchedCaseID: "case-b", HearingID: strPtr("h-1")},
	}

	out := DedupCaseMatches(matches)

	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
}

func TestDedupCaseMatches_NullHearingIsDistinctFromPresent(t *testing.T) {
	matches := []models.CaseMatch{
		{ID: "1", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: nil},
		{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: strPtr("h-1")},
		{ID: "3", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: nil},
	}

	out := DedupCaseMatches(matches)

	// Null and populated hearing ids never collapse together; the two null
	// rows do.
	assert.Len(t, out, 2)
	assert.Nil(t, out[0].HearingID)
	assert.Equal(t, "h-1", *out[1].HearingID)
}

func TestDedupCaseMatches_NullVsEmptyStringHearing(t *testing.T) {
	matches := []models.CaseMatch{
		{ID: "1", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: nil},
		{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: strPtr("")},
	}

	out := DedupCaseMatches(matches)

	assert.Len(t, out, 2)
}

func TestDedupCaseMatches_PreservesFirstOccurrenceOrder(t *testing.T) {
	matches := []models.CaseMatch{
		{ID: "1", MasterDefendantID: "md-2", MatchedCaseID: "case-b", HearingID: nil},
		{ID: "2", MasterDefendantID: "md-1", MatchedCaseID: "case-a", HearingID: nil},
		{ID: "3", MasterDefendantID: "md-2", MatchedCaseID: "case-b", HearingID: nil},
	}

	out := DedupCaseMatches(matches)

	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
}

func TestDistinctStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, DistinctStrings([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, DistinctStrings(nil))
}
