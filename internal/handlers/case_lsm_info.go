package handlers

import (
	"context"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// MatchedCaseEntry is one deduplicated cross-case match on the
// link/split/merge view.
type MatchedCaseEntry struct {
	MasterDefendantID    string  `json:"masterDefendantId"`
	CaseID               string  `json:"caseId"`
	HearingID            *string `json:"hearingId,omitempty"`
	CaseReference        string  `json:"caseReference,omitempty"`
	RelatedCaseReference string  `json:"relatedCaseReference,omitempty"`
}

// LinkedCaseEntry is one LINK or MERGE record. The reference comes from the
// link record itself; for merges it already carries the alternate suffix.
type LinkedCaseEntry struct {
	CaseID        string `json:"caseId"`
	CaseReference string `json:"caseReference,omitempty"`
}

// CaseLSMInfoHandler serves progression.query.case-lsm-info: matched,
// linked and merged cases for a case. Output keys are omitted entirely when
// their collection is empty rather than emitted as empty arrays; this view
// is the one place with that convention.
type CaseLSMInfoHandler struct {
	caseDefendants CaseDefendantLister
	matches        MatchReader
	links          LinkLister
	cases          CaseReader
	logger         ectologger.Logger
}

func NewCaseLSMInfoHandler(caseDefendants CaseDefendantLister, matches MatchReader, links LinkLister, cases CaseReader, logger ectologger.Logger) *CaseLSMInfoHandler {
	return &CaseLSMInfoHandler{
		caseDefendants: caseDefendants,
		matches:        matches,
		links:          links,
		cases:          cases,
		logger:         logger,
	}
}

func (h *CaseLSMInfoHandler) Name() string {
	return queries.NameCaseLSMInfo
}

func (h *CaseLSMInfoHandler) Handle(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "handlers.CaseLSMInfoHandler.Handle")
	defer span.End()

	var payload casePayload
	if err := queries.Bind(q, &payload); err != nil {
		return envelope.Response{}, err
	}

	matched, err := h.matchedCases(ctx, payload.CaseID)
	if err != nil {
		return envelope.Response{}, err
	}

	linkRecords, err := h.links.ListByCaseID(ctx, payload.CaseID)
	if err != nil {
		return envelope.Response{}, err
	}

	linked := make([]LinkedCaseEntry, 0)
	merged := make([]LinkedCaseEntry, 0)
	for _, link := range linkRecords {
		entry := LinkedCaseEntry{
			CaseID:        link.LinkedCaseID,
			CaseReference: link.LinkedCaseReference,
		}
		if link.LinkType == models.LinkTypeMerge {
			merged = append(merged, entry)
		} else {
			linked = append(linked, entry)
		}
	}

	result := make(map[string]any)
	if len(matched) > 0 {
		result["matchedDefendantCases"] = matched
	}
	if len(linked) > 0 {
		result["linkedCases"] = linked
	}
	if len(merged) > 0 {
		result["mergedCases"] = merged
	}

	return envelope.NewResponse(q, result)
}

func (h *CaseLSMInfoHandler) matchedCases(ctx context.Context, caseID string) ([]MatchedCaseEntry, error) {
	defendants, err := h.caseDefendants.ListByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	masterIDs := aggregation.DistinctStrings(ectolinq.Map(defendants, func(d models.CaseDefendantRow) string {
		return d.MasterDefendantID
	}))
	if len(masterIDs) == 0 {
		return nil, nil
	}

	matches, err := h.matches.ListMatchesByMasterDefendantIDs(ctx, masterIDs, caseID)
	if err != nil {
		return nil, err
	}
	matches = aggregation.DedupCaseMatches(matches)

	resolved := make(map[string]*models.ProsecutionCase)
	lookup := func(id string) (*models.ProsecutionCase, error) {
		if pc, ok := resolved[id]; ok {
			return pc, nil
		}
		pc, err := h.cases.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resolved[id] = pc
		return pc, nil
	}

	entries := make([]MatchedCaseEntry, 0, len(matches))
	for _, m := range matches {
		entry := MatchedCaseEntry{
			MasterDefendantID: m.MasterDefendantID,
			CaseID:            m.MatchedCaseID,
			HearingID:         m.HearingID,
		}

		pc, err := lookup(m.MatchedCaseID)
		if err != nil {
			return nil, err
		}
		if pc != nil {
			entry.CaseReference = pc.URN()
			if pc.RelatedCaseID != nil {
				related, err := lookup(*pc.RelatedCaseID)
				if err != nil {
					return nil, err
				}
				if related != nil {
					entry.RelatedCaseReference = related.URN()
				}
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
