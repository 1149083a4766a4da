package models

import "time"

// SplitMergeLinkType distinguishes linked cases from merged cases
type SplitMergeLinkType string

const (
	LinkTypeLink  SplitMergeLinkType = "LINK"
	LinkTypeMerge SplitMergeLinkType = "MERGE"
)

// SplitMergeLink records that a case is linked to, or was merged from/into,
// another case. For MERGE links the reference carries the alternate-suffix
// form (e.g. "<URN>/M") as written by the command side; it is never derived
// here by string manipulation.
type SplitMergeLink struct {
	ID                  string             `db:"id"`
	CaseID              string             `db:"case_id"`
	LinkedCaseID        string             `db:"linked_case_id"`
	LinkType            SplitMergeLinkType `db:"link_type"`
	LinkedCaseReference string             `db:"linked_case_reference"`
	CreatedAt           time.Time          `db:"created_at"`
}

// CaseDefendantRow maps a case to the master defendant identities appearing
// on it. Used to seed cross-case match lookups.
type CaseDefendantRow struct {
	CaseID            string `db:"case_id"`
	DefendantID       string `db:"defendant_id"`
	MasterDefendantID string `db:"master_defendant_id"`
}
