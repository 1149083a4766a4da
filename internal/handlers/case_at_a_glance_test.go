package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

func TestCaseAtAGlanceHandler(t *testing.T) {
	concluded := true
	cases := &fakeCases{cases: map[string]*models.ProsecutionCase{
		"case-1": {
			ID:        "case-1",
			Reference: "URN/1",
			Status:    models.CaseStatusActive,
			Defendants: []models.Defendant{
				{
					ID:            "d-1",
					PersonDetails: &models.PersonDetails{FirstName: "Jo", LastName: "Bloggs"},
					Offences:      []models.Offence{{ID: "o-1", Title: "Theft"}},
				},
				{
					ID:                   "d-2",
					LegalEntityName:      strPtr("Acme Ltd"),
					ProceedingsConcluded: &concluded,
				},
			},
		},
	}}

	t.Run("absent case yields an empty object", func(t *testing.T) {
		h := NewCaseAtAGlanceHandler(&fakeCases{}, &fakeListing{}, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameCaseAtAGlance, `{"caseId":"case-missing"}`))

		assert.NoError(t, err)
		assert.JSONEq(t, `{}`, string(resp.Payload))
	})

	t.Run("summarises defendants with next hearings", func(t *testing.T) {
		listing := &fakeListing{next: map[string]models.NextHearing{
			"d-1": {HearingID: "h-next", HearingType: "Plea"},
		}}
		h := NewCaseAtAGlanceHandler(cases, listing, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameCaseAtAGlance, `{"caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		assert.Equal(t, "URN/1", result["caseReference"])

		defendants := result["defendants"].([]any)
		assert.Len(t, defendants, 2)

		first := defendants[0].(map[string]any)
		assert.Equal(t, "Jo Bloggs", first["name"])
		assert.Equal(t, false, first["proceedingsConcluded"])
		assert.Len(t, first["offences"], 1)
		assert.Equal(t, "h-next", first["nextHearing"].(map[string]any)["hearingId"])

		second := defendants[1].(map[string]any)
		assert.Equal(t, "Acme Ltd", second["name"])
		assert.Equal(t, true, second["proceedingsConcluded"])
		// No offences recorded still yields a list, and no next hearing
		// omits the key.
		offences, ok := second["offences"].([]any)
		assert.True(t, ok)
		assert.Empty(t, offences)
		assert.NotContains(t, second, "nextHearing")
	})

	t.Run("listing failure propagates", func(t *testing.T) {
		listing := &fakeListing{err: errors.New("listing unavailable")}
		h := NewCaseAtAGlanceHandler(cases, listing, testLogger())

		_, err := h.Handle(context.Background(), queryWith(queries.NameCaseAtAGlance, `{"caseId":"case-1"}`))

		assert.Error(t, err)
	})
}
