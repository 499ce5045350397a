package server

// Server is the lifecycle of the whole process.
type Server interface {
	// RunServer serves until a stop signal or a fatal error and returns
	// after everything has shut down.
	RunServer() error

	// Shutdown stops accepting connections and ends running sync sessions.
	Shutdown()
}
