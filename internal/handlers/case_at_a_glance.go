package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type casePayload struct {
	CaseID string `json:"caseId" validate:"required"`
}

// GlanceDefendant is a defendant on the case-at-a-glance view, enriched
// with the next listed hearing when the listing service has one.
type GlanceDefendant struct {
	DefendantID          string              `json:"defendantId"`
	Name                 string              `json:"name,omitempty"`
	ProceedingsConcluded bool                `json:"proceedingsConcluded"`
	Offences             []models.Offence    `json:"offences"`
	NextHearing          *models.NextHearing `json:"nextHearing,omitempty"`
}

type caseAtAGlanceResult struct {
	ProsecutionCaseID string            `json:"prosecutionCaseId"`
	CaseReference     string            `json:"caseReference,omitempty"`
	CaseStatus        models.CaseStatus `json:"caseStatus,omitempty"`
	Defendants        []GlanceDefendant `json:"defendants"`
}

// CaseAtAGlanceHandler serves progression.query.case-at-a-glance: the case
// summary with per-defendant next-hearing enrichment from the listing
// service.
type CaseAtAGlanceHandler struct {
	cases   CaseReader
	listing NextHearingFinder
	logger  ectologger.Logger
}

func NewCaseAtAGlanceHandler(cases CaseReader, listing NextHearingFinder, logger ectologger.Logger) *CaseAtAGlanceHandler {
	return &CaseAtAGlanceHandler{
		cases:   cases,
		listing: listing,
		logger:  logger,
	}
}

func (h *CaseAtAGlanceHandler) Name() string {
	return queries.NameCaseAtAGlance
}

func (h *CaseAtAGlanceHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.CaseAtAGlanceHandler.Handle")
	defer span.End()

	var payload casePayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	pc, err := h.cases.GetByID(ctx, payload.CaseID)
	if err != nil {
		return envelope.Response{}, err
	}
	if pc == nil {
		return envelope.EmptyResponse(q), nil
	}

	nextHearings, err := h.listing.GetNextHearings(ctx, pc.ID)
	if err != nil {
		return envelope.Response{}, err
	}

	defendants := make([]GlanceDefendant, 0, len(pc.Defendants))
	for _, d := range pc.Defendants {
		glance := GlanceDefendant{
			DefendantID:          d.ID,
			Name:                 d.Name(),
			ProceedingsConcluded: d.IsConcluded(),
			Offences:             d.Offences,
		}
		if glance.Offences == nil {
			glance.Offences = []models.Offence{}
		}
		if nh, ok := nextHearings[d.ID]; ok {
			hearing := nh
			glance.NextHearing = &hearing
		}
		defendants = append(defendants, glance)
	}

	return envelope.NewResponse(q, caseAtAGlanceResult{
		ProsecutionCaseID: pc.ID,
		CaseReference:     pc.URN(),
		CaseStatus:        pc.Status,
		Defendants:        defendants,
	})
}
