package aggregation

import (
	"github.com/Ramsey-B/juniper/pkg/models"
)

// FormDefendant is one defendant on a structured form with the distinct
// offence ids tied to that (form, defendant) pair specifically. Offences is
// never nil; a defendant with no offence rows yields an empty list.
type FormDefendant struct {
	DefendantID string   `json:"defendantId"`
	Offences    []string `json:"offences"`
}

// FormEntry is one structured court form with its distinct defendants.
type FormEntry struct {
	CourtFormID string          `json:"courtFormId"`
	FormType    models.FormType `json:"formType"`
	Defendants  []FormDefendant `json:"defendants"`
}

// GroupFormAssociations rolls the flat (defendant, form, offence) rows up
// into one entry per distinct form. Order follows first occurrence in the
// source rows; offence ids are deduplicated per (form, defendant) and null
// offence rows contribute the defendant only.
func GroupFormAssociations(rows []models.CourtFormAssociation) []FormEntry {
	entries := make([]FormEntry, 0)
	formIndex := make(map[string]int)
	defendantIndex := make(map[string]map[string]int)
	seenOffence := make(map[string]map[string]bool)

	for _, row := range rows {
		fi, ok := formIndex[row.CourtFormID]
		if !ok {
			fi = len(entries)
			formIndex[row.CourtFormID] = fi
			defendantIndex[row.CourtFormID] = make(map[string]int)
			seenOffence[row.CourtFormID] = make(map[string]bool)
			entries = append(entries, FormEntry{
				CourtFormID: row.CourtFormID,
				FormType:    row.FormType,
				Defendants:  []FormDefendant{},
			})
		}

		di, ok := defendantIndex[row.CourtFormID][row.DefendantID]
		if !ok {
			di = len(entries[fi].Defendants)
			defendantIndex[row.CourtFormID][row.DefendantID] = di
			entries[fi].Defendants = append(entries[fi].Defendants, FormDefendant{
				DefendantID: row.DefendantID,
				Offences:    []string{},
			})
		}

		if row.OffenceID == nil || *row.OffenceID == "" {
			continue
		}

		offenceKey := row.DefendantID + "|" + *row.OffenceID
		if seenOffence[row.CourtFormID][offenceKey] {
			continue
		}
		seenOffence[row.CourtFormID][offenceKey] = true
		entries[fi].Defendants[di].Offences = append(entries[fi].Defendants[di].Offences, *row.OffenceID)
	}

	return entries
}
