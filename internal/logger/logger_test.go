package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("mylife-devserver")
	l.Logger = l.Output(&buf)

	l.Info().Msg("vault unlocked")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "mylife-devserver", entry["role"])
	assert.Equal(t, "vault unlocked", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
}

func TestNewLogger_Globals(t *testing.T) {
	NewLogger("mylife-devserver")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "mylife-client").Logger()}

	parent.WithComponent("gate").Info().Msg("probe ready")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "gate", entry["component"])
	assert.Equal(t, "mylife-client", entry["role"])
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "mylife-devserver").Logger()}

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("request")
	assert.Equal(t, "mylife-devserver", decodeEntry(t, buf.Bytes())["role"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestFromRequest(t *testing.T) {
	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "0190-abc").Logger()
		req := httptest.NewRequest(http.MethodGet, "/vault/status", nil)
		req = req.WithContext(zl.WithContext(context.Background()))

		FromRequest(req).Info().Msg("status")

		assert.Equal(t, "0190-abc", decodeEntry(t, buf.Bytes())["trace_id"])
	})

	t.Run("no logger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		require.NotNil(t, FromRequest(req))
	})
}

func TestOpenClientLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), ClientLogFile)

	l, closer := openClientLog(path, "mylife-client")
	l.Info().Msg("full reload")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "full reload", decodeEntry(t, raw)["message"])

	l, closer = openClientLog(path, "mylife-client")
	l.Info().Msg("tui finished")
	require.NoError(t, closer.Close())

	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 2, "entries are appended")
}

func TestOpenClientLog_FallsBackToStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ClientLogFile)

	l, closer := openClientLog(path, "mylife-client")

	require.NotNil(t, l)
	assert.NoError(t, closer.Close())
	assert.NoFileExists(t, path)
}
