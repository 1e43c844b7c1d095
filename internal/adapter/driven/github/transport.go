package github

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs every request that reaches the network with method,
// path, status, and duration. Cached answers never get here.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps base so each round trip is logged at debug level.
// A nil base uses http.DefaultTransport.
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("github request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond),
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("github request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}
