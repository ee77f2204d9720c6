// Package hrmsclient is the typed client for the HRMS Lite record service.
// It exposes the two resources the API serves (employees, attendance) and
// decodes the service's structured failure payloads.
package hrmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:8000"

// Config is the explicit startup configuration that replaces the original
// deployment's runtime-injected globals.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero means no client-side limit;
	// callers can still cancel through the context.
	Timeout time.Duration
	Logger  *zap.Logger
}

// ConfigFromEnv reads HRMS_API_URL (falling back to the development
// default) and HRMS_API_TIMEOUT (a Go duration string).
func ConfigFromEnv() Config {
	cfg := Config{BaseURL: DefaultBaseURL}
	if v := os.Getenv("HRMS_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HRMS_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

type Client struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

func New(cfg Config) *Client {
	l := cfg.Logger
	if l == nil {
		l = zap.L()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: cfg.Timeout},
		logger:  l.Named("hrmsclient"),
	}
}

// FieldError is one entry of an array-shaped detail payload.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// Field returns the offending field name, or "field" when the location is
// missing or too short to tell.
func (e FieldError) Field() string {
	if len(e.Loc) > 1 {
		return e.Loc[1]
	}
	return "field"
}

// APIError is a rejected request. Exactly one of Detail or Fields is set
// for the shapes the service documents; anything else is preserved in Raw.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     []FieldError
	Raw        json.RawMessage
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
	case len(e.Fields) > 0:
		return fmt.Sprintf("api error (status %d): %d field errors", e.StatusCode, len(e.Fields))
	default:
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.errorFromResponse(res)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) errorFromResponse(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		apiErr.Raw = raw
		c.logger.Warn("unexpected error payload",
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", raw),
		)
		return apiErr
	}

	if json.Unmarshal(envelope.Detail, &apiErr.Detail) == nil {
		return apiErr
	}
	if json.Unmarshal(envelope.Detail, &apiErr.Fields) == nil {
		return apiErr
	}

	apiErr.Raw = envelope.Detail
	c.logger.Warn("unrecognized detail shape",
		zap.Int("status", res.StatusCode),
		zap.ByteString("detail", envelope.Detail),
	)
	return apiErr
}
