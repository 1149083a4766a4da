package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// CaseDetailSummary is the prosecution-case detail attached to a linked
// application on the at-a-glance view.
type CaseDetailSummary struct {
	ProsecutionCaseID string            `json:"prosecutionCaseId"`
	CaseReference     string            `json:"caseReference,omitempty"`
	CaseStatus        models.CaseStatus `json:"caseStatus,omitempty"`
	InitiationCode    string            `json:"initiationCode,omitempty"`
}

// GlanceApplication is one application on the at-a-glance view, with
// optional case detail when the application references a prosecution case.
type GlanceApplication struct {
	models.CourtApplication
	CaseDetails *CaseDetailSummary `json:"caseDetails,omitempty"`
}

type applicationAtAGlanceResult struct {
	Application       GlanceApplication   `json:"application"`
	ParentApplication *GlanceApplication  `json:"parentApplication,omitempty"`
	ChildApplications []GlanceApplication `json:"childApplications"`
}

// ApplicationAtAGlanceHandler serves
// progression.query.application-at-a-glance: the application with its
// one-hop parent, all direct children, attached prosecution-case detail,
// and defence-capacity redaction of party personal details.
type ApplicationAtAGlanceHandler struct {
	applications ApplicationReader
	cases        CaseReader
	defence      DefenceChecker
	logger       ectologger.Logger
}

func NewApplicationAtAGlanceHandler(applications ApplicationReader, cases CaseReader, defence DefenceChecker, logger ectologger.Logger) *ApplicationAtAGlanceHandler {
	return &ApplicationAtAGlanceHandler{
		applications: applications,
		cases:        cases,
		defence:      defence,
		logger:       logger,
	}
}

func (h *ApplicationAtAGlanceHandler) Name() string {
	return queries.NameApplicationAtAGlance
}

func (h *ApplicationAtAGlanceHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.ApplicationAtAGlanceHandler.Handle")
	defer span.End()

	var payload applicationPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	app, err := h.applications.GetByID(ctx, payload.ApplicationID)
	if err != nil {
		return envelope.Response{}, err
	}
	if app == nil {
		return envelope.EmptyResponse(q), nil
	}

	redact, err := h.defence.IsDefendingOnly(ctx, q.UserID, app.ID)
	if err != nil {
		return envelope.Response{}, err
	}

	primary, err := h.glance(ctx, *app, redact)
	if err != nil {
		return envelope.Response{}, err
	}

	result := applicationAtAGlanceResult{
		Application:       primary,
		ChildApplications: []GlanceApplication{},
	}

	if app.ParentApplicationID != nil {
		parent, err := h.applications.GetByID(ctx, *app.ParentApplicationID)
		if err != nil {
			return envelope.Response{}, err
		}
		if parent != nil {
			glanceParent, err := h.glance(ctx, *parent, redact)
			if err != nil {
				return envelope.Response{}, err
			}
			result.ParentApplication = &glanceParent
		}
	}

	children, err := h.applications.ListByParentID(ctx, app.ID)
	if err != nil {
		return envelope.Response{}, err
	}
	for _, child := range children {
		glanceChild, err := h.glance(ctx, child, redact)
		if err != nil {
			return envelope.Response{}, err
		}
		result.ChildApplications = append(result.ChildApplications, glanceChild)
	}

	return envelope.NewResponse(q, result)
}

// glance attaches prosecution-case detail and applies party redaction to a
// single application.
func (h *ApplicationAtAGlanceHandler) glance(ctx context.Context, app models.CourtApplication, redact bool) (GlanceApplication, error) {
	if redact {
		if app.Applicant != nil {
			applicant := *app.Applicant
			applicant.Redact()
			app.Applicant = &applicant
		}
		respondents := make([]models.ApplicationParty, 0, len(app.Respondents))
		for _, respondent := range app.Respondents {
			respondent.Redact()
			respondents = append(respondents, respondent)
		}
		app.Respondents = respondents
	}

	glance := GlanceApplication{CourtApplication: app}

	if app.ProsecutionCaseID != nil {
		pc, err := h.cases.GetByID(ctx, *app.ProsecutionCaseID)
		if err != nil {
			return GlanceApplication{}, err
		}
		if pc != nil {
			glance.CaseDetails = &CaseDetailSummary{
				ProsecutionCaseID: pc.ID,
				CaseReference:     pc.URN(),
				CaseStatus:        pc.Status,
				InitiationCode:    pc.InitiationCode,
			}
		}
	}

	return glance, nil
}
