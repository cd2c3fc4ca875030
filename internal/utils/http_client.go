package utils

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of an upstream response body is logged.
const maxLoggedBody = 2000

// LoggingTransport implements http.RoundTripper and logs upstream requests and responses.
type LoggingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and logs it at debug level.
// The Authorization header is never logged.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	log := logger.Log.With(
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)
	if ce := log.Check(zap.DebugLevel, "Upstream request"); ce != nil {
		ce.Write(zap.Any("headers", redactHeaders(req.Header)))
	}

	start := time.Now()
	resp, err := transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		log.Warn("Upstream request failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	}
	if ce := log.Check(zap.DebugLevel, "Upstream response"); ce != nil {
		ce.Write(append(fields, zap.String("body", peekBody(resp)))...)
	} else if resp.StatusCode >= 400 {
		log.Warn("Upstream returned error status", append(fields, zap.String("body", peekBody(resp)))...)
	}

	return resp, nil
}

// peekBody reads the response body for logging and restores it for the caller.
func peekBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err != nil {
		return ""
	}
	if len(bodyBytes) > maxLoggedBody {
		return string(bodyBytes[:maxLoggedBody]) + "...(truncated)"
	}
	return string(bodyBytes)
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	if out.Get("Authorization") != "" {
		out.Set("Authorization", "[REDACTED]")
	}
	return out
}

// NewHTTPClient returns a new http.Client with logging enabled. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
