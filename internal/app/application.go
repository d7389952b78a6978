package app

import (
	"log/slog"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config Config
	Logger *slog.Logger
}

// Config holds all the configuration settings for our Application.
// These are read in from command-line flags when the server starts.
type Config struct {
	Port int
	Env  string
	// PreparedDir is the directory holding the exported dataset artifacts.
	PreparedDir string
	// RateLimit is the number of requests allowed per second per client.
	// Zero disables the limiter.
	RateLimit int
}
