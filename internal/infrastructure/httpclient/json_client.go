// Package httpclient is the JSON-over-HTTP client the estimates views use to
// reach the backend. It owns base URL, auth header and error wrapping; it
// never retries.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// ServerMessage is the message the server put in the "error" field, if any.
func (e *ResponseError) ServerMessage() string {
	return e.Message
}

type Client struct {
	baseURL string
	token   string
	doer    Doer
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.doer = &http.Client{Timeout: d} }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.WithFields(log.Fields{"method": method, "path": path}).Debug("[http][client] request start")
	resp, err := c.doer.Do(req)
	if err != nil {
		log.WithFields(log.Fields{"method": method, "path": path}).WithError(err).Warn("[http][client] request failed")
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := &ResponseError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: raw}
		var envelope struct {
			Code  string `json:"code"`
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			respErr.Code = envelope.Code
			respErr.Message = envelope.Error
		}
		log.WithFields(log.Fields{"method": method, "path": path, "status": resp.StatusCode}).Warn("[http][client] non-2xx response")
		return respErr
	}

	log.WithFields(log.Fields{"method": method, "path": path, "status": resp.StatusCode}).Debug("[http][client] request success")
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
