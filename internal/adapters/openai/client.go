// Package openai adapts an OpenAI-compatible chat completions API to ports.ModelClient.
package openai

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

const (
	// EnvAPIKey holds the model service credential
	EnvAPIKey = "OPENAI_API_KEY"
	// EnvBaseURL overrides the model service endpoint
	EnvBaseURL = "OPENAI_BASE_URL"
)

// Client implements ports.ModelClient with go-openai
// Requests are sent once; a failure is returned to the caller.
type Client struct {
	api *goopenai.Client
}

// Compile-time interface verification
var _ ports.ModelClient = (*Client)(nil)

// NewClient creates a Client. An empty baseURL uses the public OpenAI endpoint.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", EnvAPIKey)
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{api: goopenai.NewClientWithConfig(cfg)}, nil
}

// Complete implements ModelClient.Complete
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error) {
	request := goopenai.ChatCompletionRequest{
		Messages: toMessages(req.Messages),
		Model:    req.Model,
		Tools:    toTools(req.Tools),
	}

	resp, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		logging.Logger.Error("Model request failed", "model", req.Model, "status", statusCode(err), "error", err)
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	logging.Logger.Debug("Model responded",
		"finish_reason", choice.FinishReason,
		"tool_calls", len(choice.Message.ToolCalls),
		"total_tokens", resp.Usage.TotalTokens)

	return &domain.Completion{
		FinishReason: toFinishReason(choice.FinishReason),
		Message:      fromMessage(choice.Message),
	}, nil
}

// statusCode returns the HTTP status of a failed request, or 0 when there was no response
func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func toMessages(messages []domain.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := goopenai.ChatCompletionMessage{
			Content:    m.Content,
			Role:       string(m.Role),
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, goopenai.ToolCall{
				Function: goopenai.FunctionCall{Arguments: tc.Arguments, Name: tc.Name},
				ID:       tc.ID,
				Type:     goopenai.ToolTypeFunction,
			})
		}
		out = append(out, msg)
	}
	return out
}

func toTools(defs []domain.ToolDefinition) []goopenai.Tool {
	if len(defs) == 0 {
		return nil
	}
	out := make([]goopenai.Tool, 0, len(defs))
	for _, d := range defs {
		out = append(out, goopenai.Tool{
			Function: &goopenai.FunctionDefinition{
				Description: d.Description,
				Name:        d.Name,
				Parameters:  d.Parameters,
			},
			Type: goopenai.ToolTypeFunction,
		})
	}
	return out
}

func fromMessage(m goopenai.ChatCompletionMessage) domain.Message {
	msg := domain.Message{
		Content: m.Content,
		Role:    domain.Role(m.Role),
	}
	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, domain.ToolCall{
			Arguments: tc.Function.Arguments,
			ID:        tc.ID,
			Name:      tc.Function.Name,
		})
	}
	return msg
}

func toFinishReason(reason goopenai.FinishReason) domain.FinishReason {
	switch reason {
	case goopenai.FinishReasonStop:
		return domain.FinishReasonStop
	case goopenai.FinishReasonLength:
		return domain.FinishReasonLength
	case goopenai.FinishReasonToolCalls, goopenai.FinishReasonFunctionCall:
		return domain.FinishReasonToolCalls
	default:
		return domain.FinishReasonOther
	}
}
