package aggregation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
)

type fakeApplicationResolver struct {
	apps map[string]*models.CourtApplication
}

func (f *fakeApplicationResolver) GetByID(_ context.Context, applicationID string) (*models.CourtApplication, error) {
	return f.apps[applicationID], nil
}

type fakeNotificationChecker struct {
	notified map[string]bool
}

func (f *fakeNotificationChecker) HasCPSNotification(_ context.Context, applicationID string) (bool, error) {
	return f.notified[applicationID], nil
}

func newTestClassifier() *Classifier {
	caseID := "case-1"
	return NewClassifier(
		&fakeApplicationResolver{apps: map[string]*models.CourtApplication{
			"app-1": {ID: "app-1", ProsecutionCaseID: &caseID},
		}},
		&fakeNotificationChecker{notified: map[string]bool{"app-1": true}},
	)
}

func TestClassify_CaseCategory(t *testing.T) {
	c := newTestClassifier()

	entry, err := c.Classify(context.Background(), models.CourtDocument{
		ID:       "doc-1",
		Name:     "indictment",
		Category: models.NewCaseCategory(models.CaseCategory{ProsecutionCaseID: "case-1"}),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.CategoryCase), entry.Category)
	assert.Equal(t, []string{"case-1"}, entry.CaseIDs)
	assert.Empty(t, entry.DefendantIDs)
	assert.Empty(t, entry.HearingIDs)
}

func TestClassify_DefendantCategory(t *testing.T) {
	c := newTestClassifier()

	entry, err := c.Classify(context.Background(), models.CourtDocument{
		ID: "doc-2",
		Category: models.NewDefendantCategory(models.DefendantCategory{
			ProsecutionCaseID: "case-1",
			DefendantIDs:      []string{"d-1", "d-2", "d-1"},
		}),
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"case-1"}, entry.CaseIDs)
	assert.Equal(t, []string{"d-1", "d-2"}, entry.DefendantIDs)
	assert.Empty(t, entry.HearingIDs)
}

func TestClassify_ApplicationCategory(t *testing.T) {
	c := newTestClassifier()

	t.Run("case id resolved from the linked application", func(t *testing.T) {
		entry, err := c.Classify(context.Background(), models.CourtDocument{
			ID: "doc-3",
			Category: models.NewApplicationCategory(models.ApplicationCategory{
				ApplicationID: "app-1",
			}),
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"case-1"}, entry.CaseIDs)
		assert.True(t, entry.VisibleToProsecutor)
	})

	t.Run("embedded ids win over resolution", func(t *testing.T) {
		caseID := "case-9"
		hearingID := "h-9"
		entry, err := c.Classify(context.Background(), models.CourtDocument{
			ID: "doc-4",
			Category: models.NewApplicationCategory(models.ApplicationCategory{
				ApplicationID:     "app-2",
				ProsecutionCaseID: &caseID,
				HearingID:         &hearingID,
			}),
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"case-9"}, entry.CaseIDs)
		assert.Equal(t, []string{"h-9"}, entry.HearingIDs)
		assert.False(t, entry.VisibleToProsecutor)
	})
}

func TestClassify_NowOrderCategory(t *testing.T) {
	c := newTestClassifier()

	entry, err := c.Classify(context.Background(), models.CourtDocument{
		ID: "doc-5",
		Category: models.NewNowOrderCategory(models.NowOrderCategory{
			DefendantID:        "d-1",
			HearingID:          "h-1",
			ProsecutionCaseIDs: []string{"case-1", "case-2"},
		}),
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"case-1", "case-2"}, entry.CaseIDs)
	assert.Equal(t, []string{"d-1"}, entry.DefendantIDs)
	assert.Equal(t, []string{"h-1"}, entry.HearingIDs)
}

func TestRelevantToDefendant(t *testing.T) {
	defendantEntry := DocumentIndexEntry{
		Category:     string(models.CategoryDefendant),
		DefendantIDs: []string{"d-1"},
	}
	nowEntry := DocumentIndexEntry{
		Category:     string(models.CategoryNowOrder),
		DefendantIDs: []string{"d-2"},
	}
	caseEntry := DocumentIndexEntry{Category: string(models.CategoryCase)}

	// Defendant-scoped categories are filtered to the requested defendant.
	assert.True(t, RelevantToDefendant(defendantEntry, "d-1"))
	assert.False(t, RelevantToDefendant(defendantEntry, "d-2"))
	assert.False(t, RelevantToDefendant(nowEntry, "d-1"))

	// Case- and application-level documents are never defendant-filtered.
	assert.True(t, RelevantToDefendant(caseEntry, "d-1"))

	// No requested defendant means no filtering at all.
	assert.True(t, RelevantToDefendant(defendantEntry, ""))
}
