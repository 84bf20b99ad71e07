package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/mylife-client/models"
)

// mapHTTPError classifies a non-2xx answer. The order is significant:
// 401 and 503 win over a conflict flag in the same body.
func mapHTTPError(status int, body []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	errBody, conflict := extractErrorBody(status, body)

	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case status == http.StatusServiceUnavailable:
		kind = ErrServiceUnavailable
	case conflict || status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = ErrBadRequest
	case status >= http.StatusInternalServerError:
		kind = ErrInternalServerError
	default:
		kind = ErrRequestFailed
	}

	return &ResponseError{Kind: kind, Status: status, Body: errBody}
}

// mapEnvelope decodes a 2xx envelope into out. A nil out means the caller
// only cares about success; otherwise a missing data payload is malformed.
func mapEnvelope[T any](status int, body []byte, out *T) error {
	var envelope models.Response[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !envelope.Success {
		errBody := models.ErrorBody{Message: "request failed"}
		if envelope.Error != nil {
			errBody = *envelope.Error
		}
		kind := ErrRequestFailed
		if errBody.Conflict {
			kind = ErrConflict
		}
		return &ResponseError{Kind: kind, Status: status, Body: errBody}
	}

	if out == nil {
		return nil
	}
	if envelope.Data == nil {
		return fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}

	*out = *envelope.Data
	return nil
}

func extractErrorBody(status int, body []byte) (models.ErrorBody, bool) {
	trimmed := strings.TrimSpace(string(body))

	var envelope models.Response[json.RawMessage]
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return *envelope.Error, envelope.Error.Conflict
	}

	var detail models.DetailBody
	if err := json.Unmarshal(body, &detail); err == nil {
		if msg := detail.Message(); msg != "" {
			return models.ErrorBody{Message: msg}, false
		}
	}

	if trimmed == "" {
		trimmed = http.StatusText(status)
	}
	return models.ErrorBody{Message: trimmed}, false
}
