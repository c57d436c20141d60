// Package gemini is a client for Google's generateContent API, the one
// provider family reached natively instead of through the OpenAI-compatible
// chat-completions convention. It offers schema-constrained one-shot
// generation and a multi-turn chat primitive.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// APIError carries a non-2xx response with the provider's body as detail.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Gemini API. The credential travels with each request
// because it comes from user settings that can change between calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
}

// WithBaseURL overrides the API host, mainly for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// GenerateRequest describes one structured-generation call.
type GenerateRequest struct {
	APIKey      string
	Model       string
	Prompt      string
	Schema      *Schema
	Temperature float64
}

// GenerateJSON asks the model for schema-constrained JSON output and returns
// the raw text of the first candidate.
func (c *Client) GenerateJSON(ctx context.Context, req GenerateRequest) (string, error) {
	body := generateContentRequest{
		Contents: []content{{Role: roleUser, Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:      &req.Temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	return c.generate(ctx, req.APIKey, req.Model, body)
}

func (c *Client) generate(ctx context.Context, apiKey, model string, reqBody generateContentRequest) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("gemini: api key is not set")
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}
