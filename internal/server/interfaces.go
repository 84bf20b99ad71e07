package server

// Server is the lifecycle of the devserver transport.
type Server interface {
	// RunServer serves until a stop signal arrives, then shuts down.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
