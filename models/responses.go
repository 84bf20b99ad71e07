package models

import (
	"encoding/json"
	"strings"
)

// Response is the envelope every JSON endpoint of the backend answers with.
// A request failed when the status is not 2xx or Success is false.
type Response[T any] struct {
	Success bool       `json:"success"`
	Data    *T         `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the failure description of an envelope.
type ErrorBody struct {
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Conflict bool   `json:"conflict,omitempty"`

	LocalHash  string `json:"local_hash,omitempty"`
	RemoteHash string `json:"remote_hash,omitempty"`
}

// Text joins message and details for display.
func (e ErrorBody) Text() string {
	switch {
	case e.Message == "":
		return e.Details
	case e.Details == "":
		return e.Message
	default:
		return e.Message + ": " + e.Details
	}
}

// OK builds a successful envelope.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

// Fail builds a failed envelope.
func Fail(body ErrorBody) Response[struct{}] {
	return Response[struct{}]{Success: false, Error: &body}
}

// DetailBody is what the backend's vault guard answers with instead of the
// envelope (401 for a locked vault, 503 for an unavailable one):
//
//	{"detail": {"message": "Vault is locked", "vault_state": "LOCKED"}}
//	{"detail": "No vault files found to export"}
type DetailBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Message extracts a human-readable message from the detail field.
func (d DetailBody) Message() string {
	if len(d.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(d.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(d.Detail, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}

	return ""
}

// GuardDetail is the object form of DetailBody used by the vault guard.
type GuardDetail struct {
	Message    string     `json:"message"`
	VaultState VaultState `json:"vault_state,omitempty"`
}
