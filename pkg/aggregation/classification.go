package aggregation

import (
	"context"
	"fmt"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// DocumentIndexEntry is the classification result for one court document:
// the category label plus the derived affected-id sets.
type DocumentIndexEntry struct {
	CourtDocumentID     string   `json:"courtDocumentId"`
	DocumentName        string   `json:"documentName,omitempty"`
	Category            string   `json:"documentCategory"`
	CaseIDs             []string `json:"caseIds"`
	DefendantIDs        []string `json:"defendantIds"`
	HearingIDs          []string `json:"hearingIds"`
	VisibleToProsecutor bool     `json:"visibleToProsecutor,omitempty"`
}

// ApplicationResolver looks up the application referenced by an
// application-category document. Satisfied by the court-application
// repository.
type ApplicationResolver interface {
	GetByID(ctx context.Context, applicationID string) (*models.CourtApplication, error)
}

// NotificationChecker reports whether a CPS send notification exists for an
// application, which makes the document prosecutor-visible.
type NotificationChecker interface {
	HasCPSNotification(ctx context.Context, applicationID string) (bool, error)
}

// Classifier derives index entries from court documents. Collaborators are
// only consulted for application-category documents.
type Classifier struct {
	applications  ApplicationResolver
	notifications NotificationChecker
}

func NewClassifier(applications ApplicationResolver, notifications NotificationChecker) *Classifier {
	return &Classifier{
		applications:  applications,
		notifications: notifications,
	}
}

// Classify maps the document's single populated category to its label and
// affected case/defendant/hearing id lists. The switch is exhaustive over
// the category union.
func (c *Classifier) Classify(ctx context.Context, doc models.CourtDocument) (DocumentIndexEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "aggregation.Classifier.Classify")
	defer span.End()

	entry := DocumentIndexEntry{
		CourtDocumentID: doc.ID,
		DocumentName:    doc.Name,
		Category:        string(doc.Category.Kind()),
		CaseIDs:         []string{},
		DefendantIDs:    []string{},
		HearingIDs:      []string{},
	}

	switch doc.Category.Kind() {
	case models.CategoryCase:
		cat, _ := doc.Category.Case()
		entry.CaseIDs = []string{cat.ProsecutionCaseID}

	case models.CategoryDefendant:
		cat, _ := doc.Category.Defendant()
		entry.CaseIDs = []string{cat.ProsecutionCaseID}
		entry.DefendantIDs = DistinctStrings(cat.DefendantIDs)

	case models.CategoryApplication:
		cat, _ := doc.Category.Application()
		if err := c.classifyApplication(ctx, cat, &entry); err != nil {
			return DocumentIndexEntry{}, err
		}

	case models.CategoryNowOrder:
		cat, _ := doc.Category.NowOrder()
		entry.CaseIDs = DistinctStrings(cat.ProsecutionCaseIDs)
		entry.DefendantIDs = []string{cat.DefendantID}
		entry.HearingIDs = []string{cat.HearingID}

	default:
		return DocumentIndexEntry{}, fmt.Errorf("unclassifiable document category %q", doc.Category.Kind())
	}

	return entry, nil
}

func (c *Classifier) classifyApplication(ctx context.Context, cat models.ApplicationCategory, entry *DocumentIndexEntry) error {
	if cat.ProsecutionCaseID != nil {
		entry.CaseIDs = []string{*cat.ProsecutionCaseID}
	}
	if cat.HearingID != nil {
		entry.HearingIDs = []string{*cat.HearingID}
	}

	// Fill gaps from the linked application when the category payload does
	// not carry them directly.
	if (len(entry.CaseIDs) == 0) && c.applications != nil {
		app, err := c.applications.GetByID(ctx, cat.ApplicationID)
		if err != nil {
			return err
		}
		if app != nil && app.ProsecutionCaseID != nil {
			entry.CaseIDs = []string{*app.ProsecutionCaseID}
		}
	}

	if c.notifications != nil {
		visible, err := c.notifications.HasCPSNotification(ctx, cat.ApplicationID)
		if err != nil {
			return err
		}
		entry.VisibleToProsecutor = visible
	}

	return nil
}

// RelevantToDefendant applies the shared-document defendant filter: documents
// scoped to defendants (defendant-level and NOW-order categories) are only
// relevant when the requested defendant is in their defendant set. Case- and
// application-level documents are never defendant-filtered.
func RelevantToDefendant(entry DocumentIndexEntry, defendantID string) bool {
	switch models.CategoryKind(entry.Category) {
	case models.CategoryDefendant, models.CategoryNowOrder:
		if defendantID == "" {
			return true
		}
		for _, id := range entry.DefendantIDs {
			if id == defendantID {
				return true
			}
		}
		return false
	default:
		return true
	}
}
