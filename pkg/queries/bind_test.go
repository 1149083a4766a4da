package queries

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/envelope"
)

type bindPayload struct {
	CaseID string `json:"caseId" validate:"required"`
	Page   int    `json:"page"`
}

func TestBind(t *testing.T) {
	t.Run("decodes a valid payload", func(t *testing.T) {
		var p bindPayload
		err := Bind(envelope.Query{Payload: json.RawMessage(`{"caseId":"case-1","page":2}`)}, &p)

		assert.NoError(t, err)
		assert.Equal(t, "case-1", p.CaseID)
		assert.Equal(t, 2, p.Page)
	})

	t.Run("missing payload is a 400", func(t *testing.T) {
		var p bindPayload
		err := Bind(envelope.Query{}, &p)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		var p bindPayload
		err := Bind(envelope.Query{Payload: json.RawMessage(`{broken`)}, &p)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("failed required field is a 400", func(t *testing.T) {
		var p bindPayload
		err := Bind(envelope.Query{Payload: json.RawMessage(`{"page":1}`)}, &p)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
		assert.Contains(t, err.Error(), "CaseID")
	})
}
