// Package server runs the development backend's HTTP server with signal
// handling and graceful shutdown.
package server
