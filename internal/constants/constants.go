// Package constants provides shared constants used across the codebase.
package constants

import "time"

// HTTP server constants
const (
	// MaxRequestBodySize caps preference and progress request bodies
	MaxRequestBodySize = 1 << 20

	// RequestTimeout bounds non-streaming requests
	RequestTimeout = 30 * time.Second

	// ReadTimeout is the http.Server read timeout
	ReadTimeout = 30 * time.Second

	// IdleTimeout is the http.Server keep-alive idle timeout
	IdleTimeout = 60 * time.Second

	// ShutdownTimeout is how long serve waits for in-flight requests on exit
	ShutdownTimeout = 10 * time.Second
)

// Face progress streaming constants
const (
	// SSEHeartbeatInterval keeps idle progress streams alive through proxies
	SSEHeartbeatInterval = 25 * time.Second

	// SSEEventProgress is the event name carrying face progress values
	SSEEventProgress = "progress"
)

// Client constants
const (
	// DefaultClientTimeout is the timeout of non-streaming API client calls
	DefaultClientTimeout = 30 * time.Second

	// DefaultServerURL is used by client commands when --server is not set
	DefaultServerURL = "http://localhost:8080"
)
