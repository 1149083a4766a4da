// Package aggregation holds the merge/derivation algorithms shared by the
// query handlers: match dedup, document classification, in-memory paging,
// case-summary derivation and form grouping.
package aggregation

import (
	"github.com/Ramsey-B/juniper/pkg/models"
)

type matchKey struct {
	masterDefendantID string
	hearingID         string
	hearingPresent    bool
}

// DedupCaseMatches collapses match rows sharing the same
// (masterDefendantId, hearingId) pair, keeping first occurrence order. A null
// hearing id and a populated one are distinct keys, never collapsed together.
func DedupCaseMatches(matches []models.CaseMatch) []models.CaseMatch {
	seen := make(map[matchKey]bool, len(matches))
	out := make([]models.CaseMatch, 0, len(matches))

	for _, m := range matches {
		key := matchKey{masterDefendantID: m.MasterDefendantID}
		if m.HearingID != nil {
			key.hearingID = *m.HearingID
			key.hearingPresent = true
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}

	return out
}

// DistinctStrings keeps the first occurrence of each value, preserving order.
func DistinctStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
