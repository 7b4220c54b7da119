// Package upstream is the shared HTTP plumbing of the outbound adapters:
// one circuit breaker per dependency, latency and failure metrics, and JSON helpers.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ramp-gateway/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const maxBodyBytes = 1 << 20

// StatusError is a non-2xx response. Only 5xx responses count against the breaker.
type StatusError struct {
	Dependency string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Dependency, e.StatusCode, truncate(e.Body, 256))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Settings tune the breaker. Zero values fall back to defaults.
type Settings struct {
	Timeout             time.Duration // per request, on the http.Client
	ConsecutiveFailures uint32        // trips the breaker
	OpenFor             time.Duration // how long the breaker stays open
}

// Client wraps net/http with a named circuit breaker.
type Client struct {
	name string
	http *http.Client
	cb   *gobreaker.CircuitBreaker
	log  zerolog.Logger
}

func New(name string, s Settings, log zerolog.Logger) *Client {
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenFor <= 0 {
		s.OpenFor = 30 * time.Second
	}
	log = log.With().Str("dependency", name).Logger()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &Client{
		name: name,
		http: &http.Client{Timeout: s.Timeout},
		cb:   cb,
		log:  log,
	}
}

// Name is the dependency name used in logs and metrics.
func (c *Client) Name() string { return c.name }

// Do sends req through the breaker and returns the body of a 2xx response.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	start := time.Now()
	out, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Dependency: c.name, StatusCode: resp.StatusCode, Body: body}
		}
		return body, nil
	})
	metrics.UpstreamDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamFailures.WithLabelValues(c.name).Inc()
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("upstream call failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	return out.([]byte), nil
}

// DoJSON encodes in (when non-nil), sends the request and decodes the 2xx body into out (when non-nil).
func (c *Client) DoJSON(ctx context.Context, method, url string, header http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.Do(req)
	if err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
