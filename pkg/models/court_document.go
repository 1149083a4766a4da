package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/juniper/pkg/database"
)

// CategoryKind labels the single populated category of a court document
type CategoryKind string

const (
	CategoryCase        CategoryKind = "CASE_DOCUMENT"
	CategoryDefendant   CategoryKind = "DEFENDANT_LEVEL_DOCUMENT"
	CategoryApplication CategoryKind = "APPLICATION_DOCUMENT"
	CategoryNowOrder    CategoryKind = "NOW_DOCUMENT"
)

// CaseCategory scopes a document to a whole prosecution case
type CaseCategory struct {
	ProsecutionCaseID string `json:"prosecutionCaseId"`
}

// DefendantCategory scopes a document to named defendants on a case
type DefendantCategory struct {
	ProsecutionCaseID string   `json:"prosecutionCaseId"`
	DefendantIDs      []string `json:"defendantIds"`
}

// ApplicationCategory scopes a document to a court application
type ApplicationCategory struct {
	ApplicationID     string  `json:"applicationId"`
	ProsecutionCaseID *string `json:"prosecutionCaseId,omitempty"`
	HearingID         *string `json:"hearingId,omitempty"`
}

// NowOrderCategory scopes a NOW order notice to a defendant and the
// hearing the order was made at
type NowOrderCategory struct {
	DefendantID        string   `json:"defendantId"`
	HearingID          string   `json:"hearingId"`
	ProsecutionCaseIDs []string `json:"prosecutionCaseIds,omitempty"`
	NowTypeID          string   `json:"nowTypeId,omitempty"`
}

// DocumentCategory is the tagged union of the four mutually exclusive
// category payloads a court document can carry. Exactly one variant is
// populated; the invariant is enforced at construction and on decode, so
// classification is an exhaustive switch on Kind.
type DocumentCategory struct {
	kind        CategoryKind
	caseLevel   *CaseCategory
	defendant   *DefendantCategory
	application *ApplicationCategory
	nowOrder    *NowOrderCategory
}

func NewCaseCategory(c CaseCategory) DocumentCategory {
	return DocumentCategory{kind: CategoryCase, caseLevel: &c}
}

func NewDefendantCategory(c DefendantCategory) DocumentCategory {
	return DocumentCategory{kind: CategoryDefendant, defendant: &c}
}

func NewApplicationCategory(c ApplicationCategory) DocumentCategory {
	return DocumentCategory{kind: CategoryApplication, application: &c}
}

func NewNowOrderCategory(c NowOrderCategory) DocumentCategory {
	return DocumentCategory{kind: CategoryNowOrder, nowOrder: &c}
}

func (c DocumentCategory) Kind() CategoryKind {
	return c.kind
}

func (c DocumentCategory) Case() (CaseCategory, bool) {
	if c.caseLevel == nil {
		return CaseCategory{}, false
	}
	return *c.caseLevel, true
}

func (c DocumentCategory) Defendant() (DefendantCategory, bool) {
	if c.defendant == nil {
		return DefendantCategory{}, false
	}
	return *c.defendant, true
}

func (c DocumentCategory) Application() (ApplicationCategory, bool) {
	if c.application == nil {
		return ApplicationCategory{}, false
	}
	return *c.application, true
}

func (c DocumentCategory) NowOrder() (NowOrderCategory, bool) {
	if c.nowOrder == nil {
		return NowOrderCategory{}, false
	}
	return *c.nowOrder, true
}

// documentCategoryJSON is the stored shape: four optional keys of which
// exactly one must be present.
type documentCategoryJSON struct {
	Case        *CaseCategory        `json:"caseDocument,omitempty"`
	Defendant   *DefendantCategory   `json:"defendantDocument,omitempty"`
	Application *ApplicationCategory `json:"applicationDocument,omitempty"`
	NowOrder    *NowOrderCategory    `json:"nowDocument,omitempty"`
}

func (c *DocumentCategory) UnmarshalJSON(b []byte) error {
	var stored documentCategoryJSON
	if err := json.Unmarshal(b, &stored); err != nil {
		return err
	}

	populated := 0
	if stored.Case != nil {
		*c = NewCaseCategory(*stored.Case)
		populated++
	}
	if stored.Defendant != nil {
		*c = NewDefendantCategory(*stored.Defendant)
		populated++
	}
	if stored.Application != nil {
		*c = NewApplicationCategory(*stored.Application)
		populated++
	}
	if stored.NowOrder != nil {
		*c = NewNowOrderCategory(*stored.NowOrder)
		populated++
	}

	if populated != 1 {
		return fmt.Errorf("court document category must have exactly one variant, got %d", populated)
	}
	return nil
}

func (c DocumentCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentCategoryJSON{
		Case:        c.caseLevel,
		Defendant:   c.defendant,
		Application: c.application,
		NowOrder:    c.nowOrder,
	})
}

// Material is a stored material entry under a court document. Visibility is
// restricted to the listed user groups; the permission port decides whether
// the caller belongs to any of them.
type Material struct {
	ID            string    `json:"materialId"`
	Name          string    `json:"name,omitempty"`
	MimeType      string    `json:"mimeType,omitempty"`
	AllowedGroups []string  `json:"allowedGroups,omitempty"`
	UploadedAt    time.Time `json:"uploadDateTime,omitempty"`
}

// CourtDocument is the persisted read model for a court document
type CourtDocument struct {
	ID        string           `json:"courtDocumentId"`
	Name      string           `json:"documentName,omitempty"`
	Category  DocumentCategory `json:"documentCategory"`
	Materials []Material       `json:"materials,omitempty"`
	CreatedAt *time.Time       `json:"createdDateTime,omitempty"`
}

// CourtDocumentRow is the persisted row shape for court documents
type CourtDocumentRow struct {
	ID        string                        `db:"id"`
	Payload   database.JSONB[CourtDocument] `db:"payload"`
	CreatedAt time.Time                     `db:"created_at"`
	UpdatedAt time.Time                     `db:"updated_at"`
}

// SharedCourtDocumentEntry is a join row linking a court document to the
// hearing and user group it was shared with, and optionally to a case and
// defendant narrowing the sharing audience.
type SharedCourtDocumentEntry struct {
	ID              string    `json:"id" db:"id"`
	CourtDocumentID string    `json:"courtDocumentId" db:"court_document_id"`
	HearingID       string    `json:"hearingId" db:"hearing_id"`
	UserGroupID     string    `json:"userGroupId" db:"user_group_id"`
	CaseID          *string   `json:"caseId,omitempty" db:"case_id"`
	DefendantID     *string   `json:"defendantId,omitempty" db:"defendant_id"`
	SharedAt        time.Time `json:"sharedAt" db:"shared_at"`
}
