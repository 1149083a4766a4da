package models

import (
	"encoding/json"
	"time"
)

// CaseMatch is a cross-case match row for a master defendant, used by the
// case-linking view. HearingID may be null when the match was made outside
// any hearing context.
type CaseMatch struct {
	ID                string  `db:"id"`
	MasterDefendantID string  `db:"master_defendant_id"`
	MatchedCaseID     string  `db:"matched_case_id"`
	HearingID         *string `db:"hearing_id"`
}

// DefendantPartialMatch is a candidate duplicate defendant row. The nested
// defendants-matched payload is stored verbatim and passed through to the
// response without re-derivation.
type DefendantPartialMatch struct {
	ID                string          `db:"id"`
	CaseID            string          `db:"case_id"`
	MasterDefendantID string          `db:"master_defendant_id"`
	DefendantName     string          `db:"defendant_name"`
	CaseReceivedDate  time.Time       `db:"case_received_date"`
	Payload           json.RawMessage `db:"payload"`
}

// PartialMatchSortField selects the repository ordering for partial matches
type PartialMatchSortField string

const (
	SortByDefendantName    PartialMatchSortField = "defendantName"
	SortByCaseReceivedDate PartialMatchSortField = "caseReceivedDate"
)

// PartialMatchSortOrder is the requested direction
type PartialMatchSortOrder string

const (
	SortAsc  PartialMatchSortOrder = "Asc"
	SortDesc PartialMatchSortOrder = "Desc"
)

// PartialMatchOrdering is one of the four fixed repository orderings
type PartialMatchOrdering int

const (
	OrderByNameAsc PartialMatchOrdering = iota
	OrderByNameDesc
	OrderByDateAsc
	OrderByDateDesc
)

// ResolveOrdering maps the requested sort to a fixed repository ordering.
// Unrecognized or absent fields fall back to received-date descending.
func ResolveOrdering(field PartialMatchSortField, order PartialMatchSortOrder) PartialMatchOrdering {
	asc := order == SortAsc

	switch field {
	case SortByDefendantName:
		if asc {
			return OrderByNameAsc
		}
		return OrderByNameDesc
	case SortByCaseReceivedDate:
		if asc {
			return OrderByDateAsc
		}
		return OrderByDateDesc
	default:
		if asc {
			return OrderByDateAsc
		}
		return OrderByDateDesc
	}
}
