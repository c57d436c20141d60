// Package compat sends chat-completion requests to any provider speaking the
// OpenAI-compatible REST convention (OpenAI, DeepSeek, Qwen, Grok, Doubao).
// The openai-go transport is pointed at the provider's endpoint per call;
// retries are disabled so one call means exactly one request.
package compat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// All features share one fixed sampling temperature on this path.
const chatTemperature = 0.7

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn on the chat-completions wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one chat-completions call. JSONMode carries the response_format
// hint; callers set it only for providers whose descriptor advertises
// support, since others ignore or reject it.
type Request struct {
	Endpoint string
	APIKey   string
	Model    string
	Messages []Message
	JSONMode bool
}

// Completer is the transport interface feature services depend on.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client implements Completer over openai-go.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{}
}

// WithHTTPClient sets a custom HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

// Complete sends one request and returns the first choice's message content.
// A non-2xx status surfaces the provider's error body as the failure detail.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if req.APIKey == "" {
		return "", fmt.Errorf("api key required")
	}
	if req.Endpoint == "" {
		return "", fmt.Errorf("endpoint required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithBaseURL(normalizeBaseURL(req.Endpoint)),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(c.httpClient))
	}
	cli := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    buildMessages(req.Messages),
		Temperature: openai.Float(chatTemperature),
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := cli.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("provider request failed: %s", apierr.RawJSON())
		}
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

// openai-go resolves "chat/completions" against the base URL, so the base
// must end with a slash to keep its path segment.
func normalizeBaseURL(endpoint string) string {
	if !strings.HasSuffix(endpoint, "/") {
		return endpoint + "/"
	}
	return endpoint
}
