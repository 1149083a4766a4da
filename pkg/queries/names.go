package queries

// Query names accepted by the registry. Each name fixes the payload shape
// and the response schema of its handler.
const (
	NameApplication           = "progression.query.application"
	NameApplicationAtAGlance  = "progression.query.application-at-a-glance"
	NameCaseAtAGlance         = "progression.query.case-at-a-glance"
	NameHearing               = "progression.query.hearing"
	NameCourtDocuments        = "progression.query.court-documents"
	NameSharedCourtDocuments  = "progression.query.shared-court-documents"
	NameCaseLSMInfo           = "progression.query.case-lsm-info"
	NameDefendantPartialMatch = "progression.query.defendant-partial-matches"
	NameFormsForCase          = "progression.query.forms-for-case"
	NameForm                  = "progression.query.form"
)
