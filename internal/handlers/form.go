package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type formPayload struct {
	CourtFormID string `json:"courtFormId" validate:"required"`
}

type formResult struct {
	CourtFormID string                      `json:"courtFormId"`
	FormType    models.FormType             `json:"formType"`
	Defendants  []aggregation.FormDefendant `json:"defendants"`
	History     []models.FormHistoryEntry   `json:"history"`
}

// GetFormHandler serves progression.query.form: a single structured form
// with its grouped defendants and change history. A form with no
// association rows yields a fully empty object payload.
type GetFormHandler struct {
	forms  FormReader
	logger ectologger.Logger
}

func NewGetFormHandler(forms FormReader, logger ectologger.Logger) *GetFormHandler {
	return &GetFormHandler{forms: forms, logger: logger}
}

func (h *GetFormHandler) Name() string {
	return queries.NameForm
}

func (h *GetFormHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.GetFormHandler.Handle")
	defer span.End()

	var payload formPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	rows, err := h.forms.ListAssociationsByForm(ctx, payload.CourtFormID)
	if err != nil {
		return envelope.Response{}, err
	}
	if len(rows) == 0 {
		return envelope.EmptyResponse(q), nil
	}

	grouped := aggregation.GroupFormAssociations(rows)
	form := grouped[0]

	history, err := h.forms.ListHistory(ctx, payload.CourtFormID)
	if err != nil {
		return envelope.Response{}, err
	}
	if history == nil {
		history = []models.FormHistoryEntry{}
	}

	return envelope.NewResponse(q, formResult{
		CourtFormID: form.CourtFormID,
		FormType:    form.FormType,
		Defendants:  form.Defendants,
		History:     history,
	})
}
