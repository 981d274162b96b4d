// Package ai implements the HTTP client for the hosted generative model
// endpoint (Google generativelanguage REST API shape).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/focusflow/focusflow-api/internal/core/ports"
)

const defaultRequestTimeout = 30 * time.Second

var ErrMissingAPIKey = errors.New("ai: missing API key")

// Config captures the settings for the generative endpoint.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string // base URL, e.g. https://generativelanguage.googleapis.com/v1beta
	Timeout  time.Duration
}

// Client calls the generateContent endpoint. It implements
// ports.ModelClient.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

// NewClient validates the configuration and returns a Client. A missing API
// key is a configuration error and fatal at startup, not at request time.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		endpoint:   cfg.Endpoint,
	}, nil
}

func (c *Client) ModelName() string {
	return c.model
}

// --- Wire types (generativelanguage API) ---

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate forwards the conversation and returns the first candidate's text.
// A non-2xx status or a response without candidate text is an error; the
// caller substitutes its fallback string.
func (c *Client) Generate(ctx context.Context, turns []ports.ModelTurn) (string, error) {
	contents := make([]generateContent, 0, len(turns))
	for _, t := range turns {
		contents = append(contents, generateContent{
			Role:  t.Role,
			Parts: []generatePart{{Text: t.Text}},
		})
	}

	body, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return "", fmt.Errorf("ai: upstream returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: response has no candidate text")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
