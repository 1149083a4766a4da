package handlers

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

type courtDocumentsPayload struct {
	CaseID        string `json:"caseId,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
}

type courtDocumentsResult struct {
	CourtDocuments []models.CourtDocument `json:"courtDocuments"`
}

// SearchCourtDocumentsHandler serves progression.query.court-documents:
// documents scoped to a case or application, with materials the caller's
// groups are not authorized for stripped from each document.
type SearchCourtDocumentsHandler struct {
	documents  DocumentReader
	membership GroupMembership
	materials  MaterialReader
	logger     ectologger.Logger
}

func NewSearchCourtDocumentsHandler(documents DocumentReader, membership GroupMembership, materials MaterialReader, logger ectologger.Logger) *SearchCourtDocumentsHandler {
	return &SearchCourtDocumentsHandler{
		documents:  documents,
		membership: membership,
		materials:  materials,
		logger:     logger,
	}
}

func (h *SearchCourtDocumentsHandler) Name() string {
	return queries.NameCourtDocuments
}

func (h *SearchCourtDocumentsHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.SearchCourtDocumentsHandler.Handle")
	defer span.End()

	var payload courtDocumentsPayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}
	if payload.CaseID == "" && payload.ApplicationID == "" {
		return envelope.Response{}, httperror.NewHTTPError(http.StatusBadRequest, "either caseId or applicationId is required")
	}

	var docs []models.CourtDocument
	var err error
	if payload.CaseID != "" {
		docs, err = h.documents.ListByCaseID(ctx, payload.CaseID)
	} else {
		docs, err = h.documents.ListByApplicationID(ctx, payload.ApplicationID)
	}
	if err != nil {
		return envelope.Response{}, err
	}

	filtered := make([]models.CourtDocument, 0, len(docs))
	for _, doc := range docs {
		doc.Materials, err = h.permittedMaterials(ctx, q, doc.Materials)
		if err != nil {
			return envelope.Response{}, err
		}
		// A document whose materials were all stripped is still returned,
		// with an empty material list.
		filtered = append(filtered, doc)
	}

	return envelope.NewResponse(q, courtDocumentsResult{CourtDocuments: filtered})
}

func (h *SearchCourtDocumentsHandler) permittedMaterials(ctx context.Context, q envelope.Query, materials []models.Material) ([]models.Material, error) {
	permitted := make([]models.Material, 0, len(materials))
	for _, m := range materials {
		groups := m.AllowedGroups
		if len(groups) == 0 && h.materials != nil {
			// Persisted payloads can predate a sharing change; refresh the
			// allowed groups from the material store before denying.
			stored, err := h.materials.GetMaterial(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			if stored != nil {
				groups = stored.AllowedGroups
			}
		}

		allowed, err := h.isAllowed(ctx, q, groups)
		if err != nil {
			return nil, err
		}
		if allowed {
			permitted = append(permitted, m)
		}
	}
	return permitted, nil
}

// isAllowed checks the caller's groups against the material's allowed set.
// Groups resolved by the dispatch layer and carried on the envelope are
// authoritative; the users-and-groups service is only consulted when the
// envelope carries none.
func (h *SearchCourtDocumentsHandler) isAllowed(ctx context.Context, q envelope.Query, allowedGroups []string) (bool, error) {
	if len(q.UserGroups) > 0 {
		for _, g := range q.UserGroups {
			if ectolinq.Contains(allowedGroups, g) {
				return true, nil
			}
		}
		return false, nil
	}
	return h.membership.IsMemberOfAnyGroup(ctx, q.UserID, allowedGroups)
}
