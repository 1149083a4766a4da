package handlers

import (
	"context"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type applicationPayload struct {
	ApplicationID string `json:"applicationId" validate:"required"`
}

// LinkedApplicationSummary is a parent/child application reference on the
// application detail views.
type LinkedApplicationSummary struct {
	ApplicationID string `json:"applicationId"`
	Type          string `json:"applicationType,omitempty"`
	Reference     string `json:"applicationReference,omitempty"`
	Status        string `json:"applicationStatus,omitempty"`
	Relationship  string `json:"relationship"`
}

type applicationResult struct {
	Application        models.CourtApplication    `json:"application"`
	CourtDocuments     []models.CourtDocument     `json:"courtDocuments"`
	LinkedApplications []LinkedApplicationSummary `json:"linkedApplications"`
}

// GetApplicationHandler serves progression.query.application: the core
// application payload plus its court documents and a linked-applications
// summary from one-hop parent/child traversal.
type GetApplicationHandler struct {
	applications ApplicationReader
	documents    DocumentReader
	logger       ectologger.Logger
}

func NewGetApplicationHandler(applications ApplicationReader, documents DocumentReader, logger ectologger.Logger) *GetApplicationHandler {
	return &GetApplicationHandler{
		applications: applications,
		documents:    documents,
		logger:       logger,
	}
}

func (h *GetApplicationHandler) Name() string {
	return queries.NameApplication
}

func (h *GetApplicationHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.GetApplicationHandler.Handle")
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

	docs, err := h.documents.ListByApplicationID(ctx, app.ID)
	if err != nil {
		return envelope.Response{}, err
	}

	linked, err := linkedApplicationSummaries(ctx, h.applications, app)
	if err != nil {
		return envelope.Response{}, err
	}

	return envelope.NewResponse(q, applicationResult{
		Application:        *app,
		CourtDocuments:     docs,
		LinkedApplications: linked,
	})
}

// linkedApplicationSummaries walks one hop up to the parent and down to all
// direct children. Grandparents and grandchildren are never traversed.
func linkedApplicationSummaries(ctx context.Context, applications ApplicationReader, app *models.CourtApplication) ([]LinkedApplicationSummary, error) {
	linked := make([]LinkedApplicationSummary, 0)

	if app.ParentApplicationID != nil {
		parent, err := applications.GetByID(ctx, *app.ParentApplicationID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			linked = append(linked, LinkedApplicationSummary{
				ApplicationID: parent.ID,
				Type:          parent.Type,
				Reference:     parent.Reference,
				Status:        parent.Status,
				Relationship:  "PARENT",
			})
		}
	}

	children, err := applications.ListByParentID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	linked = append(linked, ectolinq.Map(children, func(child models.CourtApplication) LinkedApplicationSummary {
		return LinkedApplicationSummary{
			ApplicationID: child.ID,
			Type:          child.Type,
			Reference:     child.Reference,
			Status:        child.Status,
			Relationship:  "CHILD",
		}
	})...)

	return linked, nil
}
