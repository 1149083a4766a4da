package models

import (
	"time"

	"github.com/Ramsey-B/juniper/pkg/database"
)

// CourtApplication is the persisted read model for a court application.
// Applications form a shallow tree: at most one parent hop, any number of
// direct children, no deeper recursion.
type CourtApplication struct {
	ID                  string             `json:"applicationId"`
	Type                string             `json:"applicationType,omitempty"`
	Reference           string             `json:"applicationReference,omitempty"`
	Status              string             `json:"applicationStatus,omitempty"`
	ReceivedDate        *time.Time         `json:"applicationReceivedDate,omitempty"`
	DecisionDate        *time.Time         `json:"applicationDecisionDate,omitempty"`
	ParentApplicationID *string            `json:"parentApplicationId,omitempty"`
	ProsecutionCaseID   *string            `json:"prosecutionCaseId,omitempty"`
	Applicant           *ApplicationParty  `json:"applicant,omitempty"`
	Respondents         []ApplicationParty `json:"respondents,omitempty"`
	Cases               []LinkedCase       `json:"applicationCases,omitempty"`
}

// ApplicationParty is an applicant or respondent on an application.
type ApplicationParty struct {
	PartyID          string         `json:"partyId,omitempty"`
	PersonDetails    *PersonDetails `json:"personDetails,omitempty"`
	OrganisationName *string        `json:"organisationName,omitempty"`
	Representation   string         `json:"representation,omitempty"`
}

// Redact strips address and contact detail from the party identity. Applied
// when the requester is acting solely in a defending capacity on the linked
// case.
func (p *ApplicationParty) Redact() {
	if p.PersonDetails == nil {
		return
	}
	details := *p.PersonDetails
	details.Address = nil
	details.Contact = nil
	p.PersonDetails = &details
}

// ApplicationRow is the persisted row shape for court applications
type ApplicationRow struct {
	ID                  string                           `db:"id"`
	ParentApplicationID *string                          `db:"parent_application_id"`
	ProsecutionCaseID   *string                          `db:"prosecution_case_id"`
	Payload             database.JSONB[CourtApplication] `db:"payload"`
	CreatedAt           time.Time                        `db:"created_at"`
	UpdatedAt           time.Time                        `db:"updated_at"`
}
