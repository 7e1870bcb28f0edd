package geministore

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"careerai/internal/completion"
	apperrors "careerai/internal/errors"
	"careerai/internal/metrics"
	"careerai/internal/models"
)

type stubGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
	delay    time.Duration
	calls    int
}

func (s *stubGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.model = model
	s.contents = contents
	s.config = config
	time.Sleep(s.delay)
	return s.resp, s.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func TestComplete_MapsRoles(t *testing.T) {
	stub := &stubGenerator{resp: textResponse("Start with Python.")}
	client := &GeminiClient{models: stub}

	text, err := client.Complete(context.Background(), completion.Request{
		Model: "gemini-2.5-flash",
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "Be brief."},
			{Role: models.RoleUser, Content: "What language first?"},
			{Role: models.RoleAssistant, Content: "Python."},
			{Role: models.RoleUser, Content: "Why?"},
		},
		Temperature: completion.Temperature(0.7),
	})

	require.NoError(t, err)
	assert.Equal(t, "Start with Python.", text)
	assert.Equal(t, "gemini-2.5-flash", stub.model)

	require.Len(t, stub.contents, 3)
	assert.Equal(t, string(genai.RoleUser), stub.contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), stub.contents[1].Role)
	assert.Equal(t, "Why?", stub.contents[2].Parts[0].Text)

	require.NotNil(t, stub.config.SystemInstruction)
	assert.Equal(t, "Be brief.", stub.config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, stub.config.Temperature)
	assert.InDelta(t, 0.7, *stub.config.Temperature, 0.0001)
}

func TestComplete_RecordsLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	stub := &stubGenerator{resp: textResponse("ok"), delay: 20 * time.Millisecond}
	client := &GeminiClient{models: stub, metrics: metrics.NewCompletionMetrics(reg)}

	_, err := client.Complete(context.Background(), completion.Request{
		Model:    "gemini-2.5-flash",
		Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "careerai_completion_duration_seconds" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.GreaterOrEqual(t, h.GetSampleSum(), 0.02)
		found = true
	}
	assert.True(t, found, "duration histogram not registered")
}

func TestComplete_RejectsEmpty(t *testing.T) {
	stub := &stubGenerator{}
	client := &GeminiClient{models: stub}

	_, err := client.Complete(context.Background(), completion.Request{Model: "m"})
	assert.True(t, apperrors.Is(err, apperrors.Completion))

	_, err = client.Complete(context.Background(), completion.Request{
		Model:    "m",
		Messages: []models.Message{{Role: models.RoleSystem, Content: "only system"}},
	})
	assert.True(t, apperrors.Is(err, apperrors.Completion))
	assert.Zero(t, stub.calls)
}

func TestComplete_EmptyText(t *testing.T) {
	stub := &stubGenerator{resp: &genai.GenerateContentResponse{}}
	client := &GeminiClient{models: stub}

	_, err := client.Complete(context.Background(), completion.Request{
		Model:    "m",
		Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}},
	})

	assert.Equal(t, apperrors.Completion, apperrors.KindOf(err))
}

func TestClassify(t *testing.T) {
	auth := classify(status.Error(codes.Unauthenticated, "bad key"))
	assert.Equal(t, apperrors.Completion, apperrors.KindOf(auth))
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(auth))
	assert.True(t, errors.Is(auth, apperrors.ErrPermanentFailure))

	quota := classify(status.Error(codes.ResourceExhausted, "slow down"))
	assert.Equal(t, http.StatusTooManyRequests, apperrors.StatusOf(quota))
	assert.False(t, errors.Is(quota, apperrors.ErrPermanentFailure))

	apiErr := classify(&genai.APIError{Code: http.StatusNotFound, Message: "no such model"})
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(apiErr))
	assert.True(t, errors.Is(apiErr, apperrors.ErrPermanentFailure))

	generic := classify(errors.New("connection reset"))
	assert.Equal(t, apperrors.Completion, apperrors.KindOf(generic))
	assert.Zero(t, apperrors.StatusOf(generic))
}
