package models

import (
	"time"

	"github.com/Ramsey-B/juniper/pkg/database"
)

// CaseStatus is the lifecycle status of a prosecution case
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "ACTIVE"
	CaseStatusInactive CaseStatus = "INACTIVE"
	CaseStatusClosed   CaseStatus = "CLOSED"
)

// ProsecutionCase is the persisted read model for a case. It is written by
// the command side and only read here; the row stores the full case as a
// JSON payload deserialized on demand.
type ProsecutionCase struct {
	ID                 string      `json:"prosecutionCaseId"`
	Reference          string      `json:"caseReference,omitempty"`
	AlternateReference *string     `json:"alternateCaseReference,omitempty"`
	RelatedCaseID      *string     `json:"relatedCaseId,omitempty"`
	Status             CaseStatus  `json:"caseStatus,omitempty"`
	InitiationCode     string      `json:"initiationCode,omitempty"`
	Defendants         []Defendant `json:"defendants,omitempty"`
	HearingIDs         []string    `json:"hearingIds,omitempty"`
}

// URN returns the case's unique reference number, preferring the primary
// reference and falling back to the authority-assigned alternate.
func (c *ProsecutionCase) URN() string {
	if c.Reference != "" {
		return c.Reference
	}
	if c.AlternateReference != nil {
		return *c.AlternateReference
	}
	return ""
}

// Defendant is a per-case defendant record. MasterDefendantID is the stable
// identity grouping defendant records across cases and merges.
type Defendant struct {
	ID                   string         `json:"defendantId"`
	MasterDefendantID    string         `json:"masterDefendantId,omitempty"`
	PersonDetails        *PersonDetails `json:"personDetails,omitempty"`
	LegalEntityName      *string        `json:"legalEntityName,omitempty"`
	Offences             []Offence      `json:"offences,omitempty"`
	ProceedingsConcluded *bool          `json:"proceedingsConcluded,omitempty"`
}

// IsConcluded treats an absent proceedings-concluded flag as "not resulted".
func (d *Defendant) IsConcluded() bool {
	return d.ProceedingsConcluded != nil && *d.ProceedingsConcluded
}

// Name returns the display name of the defendant, person or legal entity.
func (d *Defendant) Name() string {
	if d.PersonDetails != nil {
		if d.PersonDetails.FirstName == "" {
			return d.PersonDetails.LastName
		}
		return d.PersonDetails.FirstName + " " + d.PersonDetails.LastName
	}
	if d.LegalEntityName != nil {
		return *d.LegalEntityName
	}
	return ""
}

// PersonDetails carries the personal identity of a defendant or party
type PersonDetails struct {
	Title       string     `json:"title,omitempty"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     *Address   `json:"address,omitempty"`
	Contact     *Contact   `json:"contact,omitempty"`
}

// Address is a postal address attached to a person or organisation
type Address struct {
	Line1    string `json:"address1,omitempty"`
	Line2    string `json:"address2,omitempty"`
	Line3    string `json:"address3,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// Contact holds contact details for a person or organisation
type Contact struct {
	Home   string `json:"home,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Offence is a charged offence under a defendant
type Offence struct {
	ID    string `json:"offenceId"`
	Code  string `json:"offenceCode,omitempty"`
	Title string `json:"offenceTitle,omitempty"`
}

// CaseRow is the persisted row shape for prosecution cases
type CaseRow struct {
	ID        string                          `db:"id"`
	Payload   database.JSONB[ProsecutionCase] `db:"payload"`
	CreatedAt time.Time                       `db:"created_at"`
	UpdatedAt time.Time                       `db:"updated_at"`
}
