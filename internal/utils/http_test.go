package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		value  any
		body   string
	}{
		{"envelope", http.StatusOK, map[string]any{"success": true, "data": map[string]string{"message": "ok"}}, `{"data":{"message":"ok"},"success":true}`},
		{"guard detail", http.StatusUnauthorized, map[string]string{"detail": "Vault is locked"}, `{"detail":"Vault is locked"}`},
		{"nil", http.StatusOK, nil, "null"},
		{"empty list", http.StatusOK, []string{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			require.NoError(t, WriteJSON(w, tt.status, tt.value))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusOK, make(chan int))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}
