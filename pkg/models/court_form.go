package models

import "time"

// FormType is a named structured court-form type
type FormType string

const (
	FormTypePET  FormType = "PET"
	FormTypePTPH FormType = "PTPH"
	FormTypeBCM  FormType = "BCM"
)

// FormStatus is a change-history status transition for a structured form
type FormStatus string

const (
	FormStatusCreated   FormStatus = "CREATED"
	FormStatusUpdated   FormStatus = "UPDATED"
	FormStatusFinalised FormStatus = "FINALISED"
)

// CourtFormAssociation is a flat (defendant, form, offence) association row.
// OffenceID is null for rows recording only that a defendant appears on the
// form.
type CourtFormAssociation struct {
	ID          string    `db:"id"`
	CourtFormID string    `db:"court_form_id"`
	FormType    FormType  `db:"form_type"`
	CaseID      string    `db:"case_id"`
	DefendantID string    `db:"defendant_id"`
	OffenceID   *string   `db:"offence_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// FormHistoryEntry is one change-history record for a structured form,
// ordered by creation time.
type FormHistoryEntry struct {
	ID          string     `db:"id" json:"id"`
	CourtFormID string     `db:"court_form_id" json:"courtFormId"`
	Status      FormStatus `db:"status" json:"status"`
	ChangedBy   string     `db:"changed_by" json:"changedBy,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}
