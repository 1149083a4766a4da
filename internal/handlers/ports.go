// Package handlers implements the named progression queries. Each handler
// is constructed with the narrow collaborator ports it needs and registered
// by name at startup.
package handlers

import (
	"context"

	"github.com/Ramsey-B/juniper/pkg/aggregation"
	"github.com/Ramsey-B/juniper/pkg/models"
)

// CaseReader loads prosecution cases. Absent cases are nil, nil.
type CaseReader interface {
	GetByID(ctx context.Context, caseID string) (*models.ProsecutionCase, error)
}

// HearingReader loads hearings. Absent hearings are nil, nil.
type HearingReader interface {
	GetByID(ctx context.Context, hearingID string) (*models.Hearing, error)
}

// ApplicationReader loads court applications and their relationships.
type ApplicationReader interface {
	GetByID(ctx context.Context, applicationID string) (*models.CourtApplication, error)
	ListByParentID(ctx context.Context, parentApplicationID string) ([]models.CourtApplication, error)
}

// DocumentReader loads court documents.
type DocumentReader interface {
	GetBatch(ctx context.Context, documentIDs []string) ([]models.CourtDocument, error)
	ListByCaseID(ctx context.Context, caseID string) ([]models.CourtDocument, error)
	ListByApplicationID(ctx context.Context, applicationID string) ([]models.CourtDocument, error)
}

// SharedDocumentLister loads shared-document join rows for a sharing scope.
type SharedDocumentLister interface {
	ListByScope(ctx context.Context, hearingID, userGroupID string, caseID, defendantID *string) ([]models.SharedCourtDocumentEntry, error)
}

// MatchReader loads partial-match candidates and cross-case match rows.
type MatchReader interface {
	CountByCase(ctx context.Context, caseID string) (int64, error)
	ListPage(ctx context.Context, caseID string, ordering models.PartialMatchOrdering, offset, limit int) ([]models.DefendantPartialMatch, error)
	ListMatchesByMasterDefendantIDs(ctx context.Context, masterDefendantIDs []string, excludeCaseID string) ([]models.CaseMatch, error)
}

// LinkLister loads split/merge link records for a case.
type LinkLister interface {
	ListByCaseID(ctx context.Context, caseID string) ([]models.SplitMergeLink, error)
}

// FormReader loads structured-form association and history rows.
type FormReader interface {
	ListAssociationsByCase(ctx context.Context, caseID string, formType *models.FormType) ([]models.CourtFormAssociation, error)
	ListAssociationsByForm(ctx context.Context, courtFormID string) ([]models.CourtFormAssociation, error)
	ListHistory(ctx context.Context, courtFormID string) ([]models.FormHistoryEntry, error)
}

// CaseDefendantLister loads the case-to-master-defendant mapping rows.
type CaseDefendantLister interface {
	ListByCaseID(ctx context.Context, caseID string) ([]models.CaseDefendantRow, error)
}

// NextHearingFinder is the listing-service port for per-defendant next
// hearings.
type NextHearingFinder interface {
	GetNextHearings(ctx context.Context, caseID string) (map[string]models.NextHearing, error)
}

// GroupMembership is the permission port over the users-and-groups service.
type GroupMembership interface {
	IsMemberOfAnyGroup(ctx context.Context, userID string, allowedGroups []string) (bool, error)
}

// MaterialReader is the material-store port for access metadata.
type MaterialReader interface {
	GetMaterial(ctx context.Context, materialID string) (*models.Material, error)
}

// DefenceChecker reports whether the caller acts for the defence only.
type DefenceChecker interface {
	IsDefendingOnly(ctx context.Context, userID, applicationID string) (bool, error)
}

// The aggregation resolvers are narrower views of the repository ports; keep
// that satisfaction checked at compile time.
var (
	_ aggregation.CaseResolver        = (CaseReader)(nil)
	_ aggregation.ApplicationResolver = (ApplicationReader)(nil)
)
