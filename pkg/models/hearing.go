package models

import (
	"time"

	"github.com/Ramsey-B/juniper/pkg/database"
)

// Hearing is the persisted read model for a listed hearing. A hearing id
// referenced by another entity may have no hearing row at all; callers treat
// that as "no next hearing" rather than an error.
type Hearing struct {
	ID                string             `json:"hearingId"`
	Type              string             `json:"hearingType,omitempty"`
	ListingStatus     string             `json:"listingStatus,omitempty"`
	CourtCentreName   string             `json:"courtCentreName,omitempty"`
	SittingDays       []SittingDay       `json:"sittingDays,omitempty"`
	ProsecutionCases  []LinkedCase       `json:"prosecutionCases,omitempty"`
	CourtApplications []CourtApplication `json:"courtApplications,omitempty"`
	CourtOrders       []CourtOrder       `json:"courtOrders,omitempty"`
}

// SittingDay is one scheduled day of a hearing
type SittingDay struct {
	SittingDay            time.Time `json:"sittingDay"`
	ListedDurationMinutes int       `json:"listedDurationMinutes,omitempty"`
}

// LinkedCase is a prosecution case linkage embedded under a hearing,
// application or order. Status may be embedded; when absent it is resolved
// from the linked case's own persisted payload.
type LinkedCase struct {
	ProsecutionCaseID string     `json:"prosecutionCaseId"`
	Reference         string     `json:"caseReference,omitempty"`
	Status            CaseStatus `json:"caseStatus,omitempty"`
}

// CourtOrder is a court order made at a hearing
type CourtOrder struct {
	ID               string       `json:"courtOrderId"`
	Label            string       `json:"label,omitempty"`
	OrderDate        *time.Time   `json:"orderDate,omitempty"`
	OrderedHearingID string       `json:"orderedHearingId,omitempty"`
	Cases            []LinkedCase `json:"courtOrderCases,omitempty"`
}

// HearingRow is the persisted row shape for hearings
type HearingRow struct {
	ID        string                  `db:"id"`
	Payload   database.JSONB[Hearing] `db:"payload"`
	CreatedAt time.Time               `db:"created_at"`
	UpdatedAt time.Time               `db:"updated_at"`
}

// NextHearing is the listing-service summary attached to a defendant in the
// case-at-a-glance view.
type NextHearing struct {
	HearingID       string     `json:"hearingId"`
	HearingType     string     `json:"hearingType,omitempty"`
	CourtCentreName string     `json:"courtCentreName,omitempty"`
	ListedStartAt   *time.Time `json:"listedStartDateTime,omitempty"`
}
