package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON answers with status and v encoded as JSON. When v cannot be
// encoded nothing but a plain 500 is sent.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
