package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

func TestGetFormHandler(t *testing.T) {
	t.Run("form with no association rows yields an empty object", func(t *testing.T) {
		h := NewGetFormHandler(&fakeForms{}, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameForm, `{"courtFormId":"f-missing"}`))

		assert.NoError(t, err)
		assert.JSONEq(t, `{}`, string(resp.Payload))
	})

	t.Run("groups defendants and attaches history", func(t *testing.T) {
		forms := &fakeForms{
			byForm: []models.CourtFormAssociation{
				{CourtFormID: "f-1", FormType: models.FormTypePTPH, DefendantID: "d-1", OffenceID: strPtr("o-1")},
				{CourtFormID: "f-1", FormType: models.FormTypePTPH, DefendantID: "d-1", OffenceID: strPtr("o-2")},
				{CourtFormID: "f-1", FormType: models.FormTypePTPH, DefendantID: "d-2", OffenceID: nil},
			},
			history: []models.FormHistoryEntry{
				{ID: "h-1", CourtFormID: "f-1", Status: models.FormStatusCreated},
				{ID: "h-2", CourtFormID: "f-1", Status: models.FormStatusFinalised},
			},
		}
		h := NewGetFormHandler(forms, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameForm, `{"courtFormId":"f-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		assert.Equal(t, "f-1", result["courtFormId"])
		assert.Equal(t, string(models.FormTypePTPH), result["formType"])

		defendants := result["defendants"].([]any)
		assert.Len(t, defendants, 2)
		first := defendants[0].(map[string]any)
		assert.Len(t, first["offences"], 2)
		second := defendants[1].(map[string]any)
		// Null-offence rows still list the defendant, with no offences.
		assert.Empty(t, second["offences"])
		assert.NotNil(t, second["offences"])

		history := result["history"].([]any)
		assert.Len(t, history, 2)
		assert.Equal(t, string(models.FormStatusCreated), history[0].(map[string]any)["status"])
	})

	t.Run("form without history still carries the history key", func(t *testing.T) {
		forms := &fakeForms{
			byForm: []models.CourtFormAssociation{
				{CourtFormID: "f-1", FormType: models.FormTypeBCM, DefendantID: "d-1"},
			},
		}
		h := NewGetFormHandler(forms, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameForm, `{"courtFormId":"f-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		history, ok := result["history"].([]any)
		assert.True(t, ok)
		assert.Empty(t, history)
	})
}

func TestFormsForCaseHandler(t *testing.T) {
	t.Run("returns grouped forms for the case", func(t *testing.T) {
		forms := &fakeForms{
			byCase: []models.CourtFormAssociation{
				{CourtFormID: "f-1", FormType: models.FormTypePET, DefendantID: "d-1", OffenceID: strPtr("o-1")},
				{CourtFormID: "f-2", FormType: models.FormTypePTPH, DefendantID: "d-1", OffenceID: strPtr("o-1")},
			},
		}
		h := NewFormsForCaseHandler(forms, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameFormsForCase, `{"caseId":"case-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		assert.Equal(t, "case-1", result["caseId"])
		assert.Len(t, result["forms"], 2)
		assert.Nil(t, forms.lastType)
	})

	t.Run("form type filter forwarded to the repository", func(t *testing.T) {
		forms := &fakeForms{}
		h := NewFormsForCaseHandler(forms, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameFormsForCase,
			`{"caseId":"case-1","formType":"PET"}`))

		assert.NoError(t, err)
		assert.NotNil(t, forms.lastType)
		assert.Equal(t, models.FormTypePET, *forms.lastType)

		result := decodePayload(t, resp)
		formList, ok := result["forms"].([]any)
		assert.True(t, ok)
		assert.Empty(t, formList)
	})
}
