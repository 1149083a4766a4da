package handlers

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/models"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func strPtr(s string) *string {
	return &s
}

func queryWith(name string, payload string) envelope.Query {
	return envelope.Query{
		Name:          name,
		CorrelationID: "corr-1",
		UserID:        "user-1",
		Payload:       json.RawMessage(payload),
	}
}

func decodePayload(t interface{ Fatalf(string, ...any) }, resp envelope.Response) map[string]any {
	var out map[string]any
	if err := json.Unmarshal(resp.Payload, &out); err != nil {
		t.Fatalf("failed to decode response payload: %v", err)
	}
	return out
}

type fakeCases struct {
	cases map[string]*models.ProsecutionCase
	calls int
}

func (f *fakeCases) GetByID(_ context.Context, caseID string) (*models.ProsecutionCase, error) {
	f.calls++
	return f.cases[caseID], nil
}

type fakeHearings struct {
	hearings map[string]*models.Hearing
}

func (f *fakeHearings) GetByID(_ context.Context, hearingID string) (*models.Hearing, error) {
	return f.hearings[hearingID], nil
}

type fakeApplications struct {
	apps     map[string]*models.CourtApplication
	children map[string][]models.CourtApplication
}

func (f *fakeApplications) GetByID(_ context.Context, applicationID string) (*models.CourtApplication, error) {
	return f.apps[applicationID], nil
}

func (f *fakeApplications) ListByParentID(_ context.Context, parentApplicationID string) ([]models.CourtApplication, error) {
	return f.children[parentApplicationID], nil
}

type fakeDocuments struct {
	byCase        map[string][]models.CourtDocument
	byApplication map[string][]models.CourtDocument
	byID          map[string]models.CourtDocument
	batchCalls    [][]string
}

func (f *fakeDocuments) GetBatch(_ context.Context, documentIDs []string) ([]models.CourtDocument, error) {
	f.batchCalls = append(f.batchCalls, documentIDs)
	docs := make([]models.CourtDocument, 0, len(documentIDs))
	for _, id := range documentIDs {
		if doc, ok := f.byID[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (f *fakeDocuments) ListByCaseID(_ context.Context, caseID string) ([]models.CourtDocument, error) {
	return f.byCase[caseID], nil
}

func (f *fakeDocuments) ListByApplicationID(_ context.Context, applicationID string) ([]models.CourtDocument, error) {
	return f.byApplication[applicationID], nil
}

type fakeSharedDocuments struct {
	entries []models.SharedCourtDocumentEntry
}

func (f *fakeSharedDocuments) ListByScope(_ context.Context, _, _ string, _, _ *string) ([]models.SharedCourtDocumentEntry, error) {
	return f.entries, nil
}

type fakeMatches struct {
	total         int64
	page          []models.DefendantPartialMatch
	caseMatches   []models.CaseMatch
	listPageCalls int
	lastOffset    int
	lastLimit     int
	lastOrdering  models.PartialMatchOrdering
}

func (f *fakeMatches) CountByCase(_ context.Context, _ string) (int64, error) {
	return f.total, nil
}

func (f *fakeMatches) ListPage(_ context.Context, _ string, ordering models.PartialMatchOrdering, offset, limit int) ([]models.DefendantPartialMatch, error) {
	f.listPageCalls++
	f.lastOrdering = ordering
	f.lastOffset = offset
	f.lastLimit = limit
	return f.page, nil
}

func (f *fakeMatches) ListMatchesByMasterDefendantIDs(_ context.Context, _ []string, _ string) ([]models.CaseMatch, error) {
	return f.caseMatches, nil
}

type fakeLinks struct {
	links []models.SplitMergeLink
}

func (f *fakeLinks) ListByCaseID(_ context.Context, _ string) ([]models.SplitMergeLink, error) {
	return f.links, nil
}

type fakeForms struct {
	byCase   []models.CourtFormAssociation
	byForm   []models.CourtFormAssociation
	history  []models.FormHistoryEntry
	lastType *models.FormType
}

func (f *fakeForms) ListAssociationsByCase(_ context.Context, _ string, formType *models.FormType) ([]models.CourtFormAssociation, error) {
	f.lastType = formType
	return f.byCase, nil
}

func (f *fakeForms) ListAssociationsByForm(_ context.Context, _ string) ([]models.CourtFormAssociation, error) {
	return f.byForm, nil
}

func (f *fakeForms) ListHistory(_ context.Context, _ string) ([]models.FormHistoryEntry, error) {
	return f.history, nil
}

type fakeCaseDefendants struct {
	rows []models.CaseDefendantRow
}

func (f *fakeCaseDefendants) ListByCaseID(_ context.Context, _ string) ([]models.CaseDefendantRow, error) {
	return f.rows, nil
}

type fakeListing struct {
	next map[string]models.NextHearing
	err  error
}

func (f *fakeListing) GetNextHearings(_ context.Context, _ string) (map[string]models.NextHearing, error) {
	return f.next, f.err
}

type fakeMembership struct {
	memberOf map[string]bool
}

func (f *fakeMembership) IsMemberOfAnyGroup(_ context.Context, _ string, allowedGroups []string) (bool, error) {
	for _, g := range allowedGroups {
		if f.memberOf[g] {
			return true, nil
		}
	}
	return false, nil
}

type fakeMaterials struct {
	materials map[string]*models.Material
	calls     int
}

func (f *fakeMaterials) GetMaterial(_ context.Context, materialID string) (*models.Material, error) {
	f.calls++
	return f.materials[materialID], nil
}

type fakeDefence struct {
	defendingOnly bool
}

func (f *fakeDefence) IsDefendingOnly(_ context.Context, _, _ string) (bool, error) {
	return f.defendingOnly, nil
}
