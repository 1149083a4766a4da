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

type hearingPayload struct {
	HearingID string `json:"hearingId" validate:"required"`
}

// hearingResult keys are discriminated by the hearing's sub-structure:
// applicationCases when the hearing carries court applications, orderCases
// when it carries court orders. Never both.
type hearingResult struct {
	Hearing          models.Hearing            `json:"hearing"`
	ApplicationCases []aggregation.CaseSummary `json:"applicationCases,omitempty"`
	OrderCases       []aggregation.CaseSummary `json:"orderCases,omitempty"`
}

// GetHearingHandler serves progression.query.hearing: the hearing payload
// with a derived case-summary list for its applications or orders.
type GetHearingHandler struct {
	hearings HearingReader
	cases    CaseReader
	logger   ectologger.Logger
}

func NewGetHearingHandler(hearings HearingReader, cases CaseReader, logger ectologger.Logger) *GetHearingHandler {
	return &GetHearingHandler{
		hearings: hearings,
		cases:    cases,
		logger:   logger,
	}
}

func (h *GetHearingHandler) Name() string {
	return queries.NameHearing
}

func (h *GetHearingHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.GetHearingHandler.Handle")
	defer span.End()

	var payload hearingPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	hearing, err := h.hearings.GetByID(ctx, payload.HearingID)
	if err != nil {
		return envelope.Response{}, err
	}
	if hearing == nil {
		return envelope.EmptyResponse(q), nil
	}

	result := hearingResult{Hearing: *hearing}

	switch {
	case len(hearing.CourtApplications) > 0:
		linked := make([]models.LinkedCase, 0)
		for _, app := range hearing.CourtApplications {
			linked = append(linked, app.Cases...)
		}
		result.ApplicationCases, err = aggregation.BuildCaseSummaries(ctx, linked, h.cases)
		if err != nil {
			return envelope.Response{}, err
		}

	case len(hearing.CourtOrders) > 0:
		linked := make([]models.LinkedCase, 0)
		for _, order := range hearing.CourtOrders {
			linked = append(linked, order.Cases...)
		}
		result.OrderCases, err = aggregation.BuildCaseSummaries(ctx, linked, h.cases)
		if err != nil {
			return envelope.Response{}, err
		}
	}

	return envelope.NewResponse(q, result)
}
