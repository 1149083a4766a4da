package queries

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/juniper/pkg/envelope"
)

type stubHandler struct {
	name string
	resp envelope.Response
	err  error
}

func (h *stubHandler) Name() string { return h.name }

func (h *stubHandler) Handle(_ context.Context, _ envelope.Query) (envelope.Response, error) {
	return h.resp, h.err
}

type stubRecorder struct {
	name     string
	status   string
	duration time.Duration
}

func (r *stubRecorder) RecordQuery(name string, status string, duration time.Duration) {
	r.name = name
	r.status = status
	r.duration = duration
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(testLogger(), nil)
	r.Register(&stubHandler{name: "get_case"})
	r.Register(&stubHandler{name: "get_hearing"})

	assert.ElementsMatch(t, []string{"get_case", "get_hearing"}, r.Names())

	assert.Panics(t, func() {
		r.Register(&stubHandler{name: "get_case"})
	})
}

func TestRegistry_Dispatch(t *testing.T) {
	t.Run("routes to the named handler", func(t *testing.T) {
		recorder := &stubRecorder{}
		r := NewRegistry(testLogger(), recorder)
		r.Register(&stubHandler{
			name: "get_case",
			resp: envelope.Response{Name: "get_case", CorrelationID: "corr-1"},
		})

		resp, err := r.Dispatch(context.Background(), envelope.Query{Name: "get_case", CorrelationID: "corr-1"})

		assert.NoError(t, err)
		assert.Equal(t, "corr-1", resp.CorrelationID)
		assert.Equal(t, "get_case", recorder.name)
		assert.Equal(t, "ok", recorder.status)
	})

	t.Run("unknown name is a client error", func(t *testing.T) {
		r := NewRegistry(testLogger(), nil)

		_, err := r.Dispatch(context.Background(), envelope.Query{Name: "no_such_query"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("handler errors record their status code", func(t *testing.T) {
		recorder := &stubRecorder{}
		r := NewRegistry(testLogger(), recorder)
		r.Register(&stubHandler{
			name: "get_case",
			err:  httperror.NewHTTPError(http.StatusNotFound, "missing"),
		})

		_, err := r.Dispatch(context.Background(), envelope.Query{Name: "get_case"})

		assert.Error(t, err)
		assert.Equal(t, "404", recorder.status)
	})
}
