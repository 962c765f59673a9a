// Package api provides an HTTP API server for capturing and querying memory.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8091")
	ListenAddr string
}

// ErrorResponse is the JSON error envelope returned by every failing handler.
type ErrorResponse struct {
	Error string `json:"error"`
}
