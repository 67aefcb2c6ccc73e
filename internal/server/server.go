package server

import (
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// NewHandler mounts the definition service and wraps it with CORS for the given origins.
func NewHandler(lookuper Lookuper, allowedOrigins []string) http.Handler {
	path, h := NewDefinitionServiceHandler(
		NewDefinitionHandler(lookuper),
		connect.WithInterceptors(NewLoggingInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(path, h)

	return corsMiddleware(allowedOrigins, h2c.NewHandler(mux, &http2.Server{}))
}

// New returns an HTTP server listening on port.
func New(port int, lookuper Lookuper, allowedOrigins []string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHandler(lookuper, allowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
