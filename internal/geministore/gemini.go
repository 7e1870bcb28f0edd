package geministore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"careerai/internal/completion"
	apperrors "careerai/internal/errors"
	"careerai/internal/metrics"
	"careerai/internal/models"
)

const providerName = "gemini"

var tracer = otel.Tracer("careerai.internal.geministore")

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient answers completion requests through the Gemini API. It
// accepts the same Request as the OpenRouter client.
type GeminiClient struct {
	models  generator
	metrics *metrics.CompletionMetrics
}

func New(ctx context.Context, apiKey string, m *metrics.CompletionMetrics) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewCompletion("failed to create gemini client", 0, err)
	}

	return &GeminiClient{models: client.Models, metrics: m}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, req completion.Request) (string, error) {
	if req.Model == "" {
		return "", apperrors.NewCompletion("completion request has no model", 0, nil)
	}

	contents, conf := toContents(req)
	if len(contents) == 0 {
		return "", apperrors.NewCompletion("completion request has no messages", 0, nil)
	}

	ctx, span := tracer.Start(ctx, "completion.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.String("llm.model", req.Model),
		attribute.Int("llm.messages", len(req.Messages)),
	)

	start := time.Now()
	result, err := g.models.GenerateContent(ctx, req.Model, contents, conf)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		g.metrics.Observe(providerName, req.Model, "error", elapsed)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "completion failed")
		return "", classify(err)
	}

	text := result.Text()
	if text == "" {
		g.metrics.Observe(providerName, req.Model, "empty", elapsed)
		span.SetStatus(otelcodes.Error, "no text")
		return "", apperrors.NewCompletion("malformed completion response: gemini returned no text", 0, nil)
	}

	g.metrics.Observe(providerName, req.Model, "success", elapsed)
	return text, nil
}

// toContents moves system messages into the system instruction and maps
// assistant turns to the model role, keeping the remaining order.
func toContents(req completion.Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	var contents []*genai.Content

	for _, m := range req.Messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	conf := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		conf.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if req.Temperature != nil {
		conf.Temperature = req.Temperature
	}

	return contents, conf
}

func classify(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return fromHTTPStatus(apiErr.Code, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return apperrors.NewCompletion("gemini authentication failed", http.StatusUnauthorized, errors.Join(err, apperrors.ErrPermanentFailure))
		case codes.InvalidArgument:
			return apperrors.NewCompletion("gemini invalid input", http.StatusBadRequest, errors.Join(err, apperrors.ErrPermanentFailure))
		case codes.NotFound:
			return apperrors.NewCompletion("gemini model not found", http.StatusNotFound, errors.Join(err, apperrors.ErrPermanentFailure))
		case codes.ResourceExhausted:
			return apperrors.NewCompletion("gemini quota exhausted", http.StatusTooManyRequests, err)
		}
	}

	return apperrors.NewCompletion("gemini request failed", 0, err)
}

func fromHTTPStatus(code int, err error) error {
	msg := fmt.Sprintf("gemini returned status %d", code)
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return apperrors.NewCompletion(msg, code, errors.Join(err, apperrors.ErrPermanentFailure))
	default:
		return apperrors.NewCompletion(msg, code, err)
	}
}
