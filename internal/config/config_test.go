package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "careerai/internal/errors"
)

func TestLoadCredential_Missing(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	key, err := LoadCredential(APIKeyEnv)

	require.Error(t, err)
	assert.Empty(t, key)
	assert.Equal(t, apperrors.MissingCredential, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), APIKeyEnv)
}

func TestLoadCredential_Blank(t *testing.T) {
	t.Setenv(APIKeyEnv, "   ")

	_, err := LoadCredential(APIKeyEnv)

	assert.True(t, apperrors.Is(err, apperrors.MissingCredential))
}

func TestLoadCredential_Present(t *testing.T) {
	t.Setenv(APIKeyEnv, " sk-or-test ")

	key, err := LoadCredential(APIKeyEnv)

	require.NoError(t, err)
	assert.Equal(t, "sk-or-test", key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LLM_PROVIDER", "OPENROUTER_BASE_URL", "LLM_MODEL", "ATS_MODEL", "MAX_UPLOAD_BYTES", "ALLOWED_ORIGINS", "CHAT_HISTORY_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultATSModel, cfg.ATSModel)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.ChatHistoryTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CHAT_HISTORY_TTL", "90m")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.ChatHistoryTTL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}
