package queries

import (
	"encoding/json"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/juniper/pkg/envelope"
)

var validate = validator.New()

// Bind decodes the query payload into target and applies its validate tags.
// Any failure is a client error raised before a single collaborator call.
func Bind(q envelope.Query, target any) error {
	if len(q.Payload) == 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "query payload is required")
	}

	if err := json.Unmarshal(q.Payload, target); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid query payload")
	}

	if err := validate.Struct(target); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid query payload: field %s failed on %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid query payload")
	}

	return nil
}
