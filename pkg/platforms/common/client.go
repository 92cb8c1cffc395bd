// Package common holds the HTTP plumbing shared by the networked
// platform adapters: a small JSON client and the mapping from HTTP
// status codes to the coded error taxonomy.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/utils/ratelimit"
)

// DefaultTimeout bounds a single vendor API call.
const DefaultTimeout = 30 * time.Second

// Client is a minimal JSON-over-HTTP client bound to one platform, so
// every error it produces is already attributed.
type Client struct {
	platform string
	http     *http.Client
	headers  map[string]string
	limiter  *ratelimit.TokenBucket
}

// NewClient creates a client for a platform with static headers
// (authorization and the like) applied to every request.
func NewClient(platform string, timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		platform: platform,
		http:     &http.Client{Timeout: timeout},
		headers:  headers,
	}
}

// WithRateLimit paces every request through a token bucket. Returns c
// for chaining at construction.
func (c *Client) WithRateLimit(rate ratelimit.Rate, burst int) *Client {
	c.limiter = ratelimit.NewTokenBucket(rate, burst)
	return c
}

// DoJSON performs one request with a JSON body and decodes a JSON
// response into out (when out is non-nil). Transport failures map to
// network errors; non-2xx statuses map through MapStatus.
func (c *Client) DoJSON(ctx context.Context, method, url string, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, errors.ErrRateLimited, "canceled while pacing").WithPlatform(c.platform)
		}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, errors.ErrUnknown, "encode request").WithPlatform(c.platform)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, errors.ErrUnknown, "build request").WithPlatform(c.platform)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrNetwork, "request failed").WithPlatform(c.platform)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return MapStatus(c.platform, resp.StatusCode, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, errors.ErrUnknown, "decode response").WithPlatform(c.platform)
		}
	}
	return nil
}

// MapStatus translates an HTTP status into a coded error.
func MapStatus(platform string, status int, body string) *errors.PublishError {
	var err *errors.PublishError
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		err = errors.Newf(errors.ErrAuth, "status %d", status)
	case status == http.StatusNotFound:
		err = errors.Newf(errors.ErrNotFound, "status %d", status)
	case status == http.StatusTooManyRequests:
		err = errors.Newf(errors.ErrRateLimited, "status %d", status)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		err = errors.Newf(errors.ErrValidation, "rejected by platform, status %d", status)
	case status >= 500:
		err = errors.Newf(errors.ErrNetwork, "server error, status %d", status)
	default:
		err = errors.Newf(errors.ErrUnknown, "unexpected status %d", status)
	}
	if body != "" {
		err = err.WithDetails(fmt.Sprintf("response: %s", body))
	}
	return err.WithPlatform(platform)
}
