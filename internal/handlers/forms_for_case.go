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

type formsForCasePayload struct {
	CaseID   string           `json:"caseId" validate:"required"`
	FormType *models.FormType `json:"formType,omitempty"`
}

type formsForCaseResult struct {
	CaseID string                  `json:"caseId"`
	Forms  []aggregation.FormEntry `json:"forms"`
}

// FormsForCaseHandler serves progression.query.forms-for-case: the grouped
// structured forms for a case, optionally narrowed to one form type.
type FormsForCaseHandler struct {
	forms  FormReader
	logger ectologger.Logger
}

func NewFormsForCaseHandler(forms FormReader, logger ectologger.Logger) *FormsForCaseHandler {
	return &FormsForCaseHandler{forms: forms, logger: logger}
}

func (h *FormsForCaseHandler) Name() string {
	return queries.NameFormsForCase
}

func (h *FormsForCaseHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.FormsForCaseHandler.Handle")
	defer span.End()

	var payload formsForCasePayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	rows, err := h.forms.ListAssociationsByCase(ctx, payload.CaseID, payload.FormType)
	if err != nil {
		return envelope.Response{}, err
	}

	return envelope.NewResponse(q, formsForCaseResult{
		CaseID: payload.CaseID,
		Forms:  aggregation.GroupFormAssociations(rows),
	})
}
