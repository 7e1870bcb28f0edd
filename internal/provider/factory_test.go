package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/completion"
	"careerai/internal/config"
	apperrors "careerai/internal/errors"
)

func TestNew_OpenRouter(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "sk-or-test")

	c, err := New(context.Background(), &config.Config{Provider: "openrouter", BaseURL: config.DefaultBaseURL}, nil)

	require.NoError(t, err)
	assert.IsType(t, &completion.Client{}, c)
}

func TestNew_MissingCredential(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	t.Setenv(config.GeminiAPIKeyEnv, "")

	_, err := New(context.Background(), &config.Config{Provider: "openrouter"}, nil)
	assert.Equal(t, apperrors.MissingCredential, apperrors.KindOf(err))

	_, err = New(context.Background(), &config.Config{Provider: "gemini"}, nil)
	assert.Equal(t, apperrors.MissingCredential, apperrors.KindOf(err))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Provider: "carrier-pigeon"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}
