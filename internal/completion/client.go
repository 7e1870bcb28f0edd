package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "careerai/internal/errors"
	"careerai/internal/metrics"
	"careerai/internal/models"
)

const providerName = "openrouter"

var tracer = otel.Tracer("careerai.internal.completion")

// Request is one chat completion call. Temperature is left to the
// server default when nil.
type Request struct {
	Model       string
	Messages    []models.Message
	Temperature *float32
}

func Temperature(t float32) *float32 {
	return &t
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	// Timeout of zero keeps the transport default.
	Timeout time.Duration
}

// Client sends chat completions to an OpenAI-compatible endpoint. One Client
// is built per process and shared; it keeps no per-call state.
type Client struct {
	chat    chatClient
	metrics *metrics.CompletionMetrics
}

func New(conf Config, m *metrics.CompletionMetrics) (*Client, error) {
	if conf.APIKey == "" {
		return nil, apperrors.NewMissingCredential("OPENROUTER_API_KEY")
	}

	cfg := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		cfg.BaseURL = conf.BaseURL
	}
	if conf.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: conf.Timeout}
	}

	return newWithChatClient(openai.NewClientWithConfig(cfg), m), nil
}

func newWithChatClient(chat chatClient, m *metrics.CompletionMetrics) *Client {
	return &Client{chat: chat, metrics: m}
}

// Complete performs exactly one round trip and returns the first choice's
// content. Every failure is a Completion error.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		return "", apperrors.NewCompletion("completion request has no model", 0, nil)
	}
	if len(req.Messages) == 0 {
		return "", apperrors.NewCompletion("completion request has no messages", 0, nil)
	}

	ctx, span := tracer.Start(ctx, "completion.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.messages", len(req.Messages)),
	)

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: toChatMessages(req.Messages),
	}
	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}

	start := time.Now()
	resp, err := c.chat.CreateChatCompletion(ctx, chatReq)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		c.metrics.Observe(providerName, req.Model, "error", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		c.metrics.Observe(providerName, req.Model, "empty", elapsed)
		span.SetStatus(codes.Error, "no choices")
		return "", apperrors.NewCompletion("malformed completion response: no choices returned", 0, nil)
	}

	c.metrics.Observe(providerName, req.Model, "success", elapsed)
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(msgs []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewCompletion(
			fmt.Sprintf("completion endpoint returned status %d", apiErr.HTTPStatusCode),
			apiErr.HTTPStatusCode,
			err,
		)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.NewCompletion(
			fmt.Sprintf("completion request failed with status %d", reqErr.HTTPStatusCode),
			reqErr.HTTPStatusCode,
			err,
		)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewCompletion("completion request was cancelled", 0, err)
	}

	return apperrors.NewCompletion("completion request failed", 0, err)
}
