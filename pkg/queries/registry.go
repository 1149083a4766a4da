// Package queries dispatches query envelopes to their handlers. The registry
// is built once at startup; dispatch is a map lookup, not a string switch.
package queries

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Handler processes one named query
type Handler interface {
	Name() string
	Handle(ctx context.Context, q envelope.Query) (envelope.Response, error)
}

// Recorder observes dispatch outcomes. Satisfied by pkg/metrics.
type Recorder interface {
	RecordQuery(name string, status string, duration time.Duration)
}

// Registry maps query names to handlers
type Registry struct {
	handlers map[string]Handler
	logger   ectologger.Logger
	recorder Recorder
}

// NewRegistry creates an empty registry. The recorder may be nil.
func NewRegistry(logger ectologger.Logger, recorder Recorder) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
		recorder: recorder,
	}
}

// Register adds a handler. Duplicate names are a wiring bug, so they panic
// at startup rather than shadowing silently.
func (r *Registry) Register(h Handler) {
	if _, exists := r.handlers[h.Name()]; exists {
		panic(fmt.Sprintf("queries: duplicate handler registered for %q", h.Name()))
	}
	r.handlers[h.Name()] = h
}

// Names returns the registered query names
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes the envelope to its handler and returns the correlated
// response. Unknown names are a client error.
func (r *Registry) Dispatch(ctx context.Context, q envelope.Query) (envelope.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "queries.Registry.Dispatch")
	defer span.End()

	handler, ok := r.handlers[q.Name]
	if !ok {
		return envelope.Response{}, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown query name %q", q.Name)
	}

	start := time.Now()
	resp, err := handler.Handle(ctx, q)
	r.record(q.Name, err, time.Since(start))

	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"query":          q.Name,
			"correlation_id": q.CorrelationID,
		}).Error("Query handler failed")
		return envelope.Response{}, err
	}

	return resp, nil
}

func (r *Registry) record(name string, err error, duration time.Duration) {
	if r.recorder == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = fmt.Sprintf("%d", httperror.GetStatusCode(err))
	}
	r.recorder.RecordQuery(name, status, duration)
}
