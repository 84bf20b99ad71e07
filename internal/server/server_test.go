package server

import (
	"testing"
	"time"

	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/handler"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	cfg := config.ServerConfig{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	handlers, err := handler.NewHandlers(devbackend.New(logger.Nop()), nil, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())

	require.NoError(t, err)
	s := srv.(*server)
	assert.Equal(t, "127.0.0.1:0", s.httpServer.server.Addr)
	assert.Equal(t, time.Second, s.httpServer.server.ReadHeaderTimeout)
}

func TestNewServer_NoHandlers(t *testing.T) {
	srv, err := NewServer(nil, config.ServerConfig{HTTPAddress: ":8000"}, logger.Nop())

	assert.Nil(t, srv)
	assert.ErrorIs(t, err, ErrIncompleteServer)
}

func TestHTTPServer_ShutdownBeforeRun(t *testing.T) {
	s := newHTTPServer(nil, config.ServerConfig{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}, logger.Nop())

	assert.NotPanics(t, s.Shutdown)
}
