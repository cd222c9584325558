package api

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tuninggarage/internal/session"
)

// authTransport attaches the bearer token to outbound requests. The token is
// read fresh for every request, so logins and logouts on other goroutines are
// picked up without shared request state.
type authTransport struct {
	creds session.Reader
	next  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.creds.Token()
	if token == "" {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not mutate the original request.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(clone)
}

// LogLevel controls how much request/response traffic is logged.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogBasic
	LogBody
)

// ParseLogLevel maps a config string to a level. Unknown values mean LogNone.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return LogBasic
	case "body":
		return LogBody
	default:
		return LogNone
	}
}

// loggingTransport logs traffic without ever altering request semantics.
// Logging failures are swallowed; a broken logger must not fail a request.
type loggingTransport struct {
	level LogLevel
	next  http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.level == LogNone {
		return t.next.RoundTrip(req)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("http %s %s error after %s: %v", req.Method, req.URL.Path, elapsed.Round(time.Millisecond), err)
		return resp, err
	}

	log.Printf("http %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, elapsed.Round(time.Millisecond))

	if t.level >= LogBody && resp.Body != nil {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			// Hand the caller the read failure; the body is gone either way.
			resp.Body = io.NopCloser(strings.NewReader(""))
			return resp, nil
		}
		log.Printf("http %s %s body: %s", req.Method, req.URL.Path, truncate(string(body), 2048))
		resp.Body = io.NopCloser(strings.NewReader(string(body)))
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
