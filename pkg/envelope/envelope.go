// Package envelope defines the correlated query/response wrappers exchanged
// with the dispatch layer. Payload field names follow the progression query
// contract (camelCase), unlike the service's internal snake_case tables.
package envelope

import (
	"encoding/json"
)

// Query is an inbound query envelope. The payload shape is entirely
// determined by Name; handlers must not assume optional fields are present.
type Query struct {
	Name          string          `json:"name"`
	CorrelationID string          `json:"correlationId"`
	UserID        string          `json:"userId,omitempty"`
	UserGroups    []string        `json:"userGroups,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// Response wraps a query result. CorrelationID always matches the
// originating query and Payload is always present, even for empty results.
type Response struct {
	Name          string          `json:"name"`
	CorrelationID string          `json:"correlationId"`
	Payload       json.RawMessage `json:"payload"`
}

var emptyObject = json.RawMessage(`{}`)

// NewResponse builds a response correlated to the given query. A nil payload
// becomes an empty JSON object; the payload key is never absent.
func NewResponse(q Query, payload any) (Response, error) {
	resp := Response{
		Name:          q.Name,
		CorrelationID: q.CorrelationID,
		Payload:       emptyObject,
	}

	if payload == nil {
		return resp, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Response{}, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return resp, nil
	}

	resp.Payload = raw
	return resp, nil
}

// EmptyResponse builds a response with an empty object payload. Used when the
// query subject itself does not exist.
func EmptyResponse(q Query) Response {
	return Response{
		Name:          q.Name,
		CorrelationID: q.CorrelationID,
		Payload:       emptyObject,
	}
}
