package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to a read-only API. The
// public snapshot endpoint is bounded by the request-timeout middleware, so
// WriteTimeout only needs to cover slow clients.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
