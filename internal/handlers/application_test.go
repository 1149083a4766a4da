package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

func TestGetApplicationHandler(t *testing.T) {
	parentID := "app-parent"
	applications := &fakeApplications{
		apps: map[string]*models.CourtApplication{
			"app-1":      {ID: "app-1", Type: "APPEAL", Reference: "APP/1", ParentApplicationID: &parentID},
			"app-parent": {ID: "app-parent", Type: "ORIGINAL", Reference: "APP/0"},
		},
		children: map[string][]models.CourtApplication{
			"app-1": {
				{ID: "app-child-1", Reference: "APP/1A"},
				{ID: "app-child-2", Reference: "APP/1B"},
			},
		},
	}

	t.Run("absent application yields an empty object", func(t *testing.T) {
		h := NewGetApplicationHandler(&fakeApplications{}, &fakeDocuments{}, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameApplication, `{"applicationId":"app-missing"}`))

		assert.NoError(t, err)
		assert.JSONEq(t, `{}`, string(resp.Payload))
	})

	t.Run("returns application with documents and one-hop links", func(t *testing.T) {
		documents := &fakeDocuments{byApplication: map[string][]models.CourtDocument{
			"app-1": {{ID: "doc-1", Category: models.NewApplicationCategory(models.ApplicationCategory{ApplicationID: "app-1"})}},
		}}
		h := NewGetApplicationHandler(applications, documents, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameApplication, `{"applicationId":"app-1"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		assert.Equal(t, "app-1", result["application"].(map[string]any)["applicationId"])
		assert.Len(t, result["courtDocuments"], 1)

		linked := result["linkedApplications"].([]any)
		assert.Len(t, linked, 3)
		assert.Equal(t, "PARENT", linked[0].(map[string]any)["relationship"])
		assert.Equal(t, "app-parent", linked[0].(map[string]any)["applicationId"])
		assert.Equal(t, "CHILD", linked[1].(map[string]any)["relationship"])
		assert.Equal(t, "CHILD", linked[2].(map[string]any)["relationship"])
	})

	t.Run("root application lists children only", func(t *testing.T) {
		h := NewGetApplicationHandler(applications, &fakeDocuments{}, testLogger())

		resp, err := h.Handle(context.Background(), queryWith(queries.NameApplication, `{"applicationId":"app-parent"}`))

		assert.NoError(t, err)
		result := decodePayload(t, resp)
		linked, ok := result["linkedApplications"].([]any)
		assert.True(t, ok)
		assert.Empty(t, linked)
		// courtDocuments is present even with nothing attached.
		assert.Contains(t, result, "courtDocuments")
	})
}
