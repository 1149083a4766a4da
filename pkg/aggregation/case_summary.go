package aggregation

import (
	"context"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// CaseSummary is the derived status/URN summary for a prosecution case
// linked under a hearing, application or order.
type CaseSummary struct {
	ProsecutionCaseID string            `json:"prosecutionCaseId"`
	CaseReference     string            `json:"caseReference,omitempty"`
	CaseStatus        models.CaseStatus `json:"caseStatus,omitempty"`
}

// CaseResolver loads a prosecution case payload by id. Absent cases return
// nil, nil. Satisfied by the prosecution-case repository.
type CaseResolver interface {
	GetByID(ctx context.Context, caseID string) (*models.ProsecutionCase, error)
}

// BuildCaseSummaries derives a summary per linked case, preserving source
// order. Status embedded on the linkage wins; otherwise it is resolved from
// the linked case's own persisted payload, as is the reference (primary
// first, authority-assigned alternate as fallback).
func BuildCaseSummaries(ctx context.Context, linked []models.LinkedCase, resolver CaseResolver) ([]CaseSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "aggregation.BuildCaseSummaries")
	defer span.End()

	summaries := make([]CaseSummary, 0, len(linked))
	for _, lc := range linked {
		summary := CaseSummary{
			ProsecutionCaseID: lc.ProsecutionCaseID,
			CaseReference:     lc.Reference,
			CaseStatus:        lc.Status,
		}

		if summary.CaseStatus == "" || summary.CaseReference == "" {
			resolved, err := resolver.GetByID(ctx, lc.ProsecutionCaseID)
			if err != nil {
				return nil, err
			}
			if resolved != nil {
				if summary.CaseStatus == "" {
					summary.CaseStatus = resolved.Status
				}
				if summary.CaseReference == "" {
					summary.CaseReference = resolved.URN()
				}
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
