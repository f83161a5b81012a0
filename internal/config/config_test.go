package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	require.Equal(t, "Tutor API", cfg.AppName)
	require.Equal(t, ":8000", cfg.HTTPAddress())
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "tutor.db", cfg.DatabaseURL)
	require.Equal(t, "gemini", cfg.AIProvider)
	require.Equal(t, 4, cfg.WorkerPoolSize)
	require.Equal(t, 5*time.Minute, cfg.LessonCacheTTL)
	require.Zero(t, cfg.AITimeout)
	require.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigins)
	require.False(t, cfg.SeedEnabled)
}

func TestFromViperPrefixedEnvironment(t *testing.T) {
	t.Setenv("TUTOR_APP_PORT", ":9090")
	t.Setenv("TUTOR_AI_PROVIDER", "OpenAI")
	t.Setenv("TUTOR_OPENAI_API_KEY", "sk-test")
	t.Setenv("TUTOR_WORKER_POOL_SIZE", "8")
	t.Setenv("TUTOR_AI_TIMEOUT", "45s")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "openai", cfg.AIProvider)
	require.Equal(t, "sk-test", cfg.AIAPIKey())
	require.Equal(t, 8, cfg.WorkerPoolSize)
	require.Equal(t, 45*time.Second, cfg.AITimeout)
}

func TestFromViperLegacyEnvironmentNames(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "legacy-key")
	t.Setenv("LLM_MODEL_NAME", "gemini-1.5-flash")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("DATABASE_URL", "lessons.db")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	require.Equal(t, "legacy-key", cfg.AIAPIKey())
	require.Equal(t, "gemini-1.5-flash", cfg.AIModel)
	require.InDelta(t, 0.7, cfg.AITemperature, 0.0001)
	require.Equal(t, "lessons.db", cfg.DatabaseURL)
}

func TestFromViperRejectsUnknownDriver(t *testing.T) {
	t.Setenv("TUTOR_DATABASE_DRIVER", "mysql")

	_, err := FromViper(viper.New())
	require.Error(t, err)
}

func TestFromViperRejectsInvalidTTL(t *testing.T) {
	t.Setenv("TUTOR_LESSONS_CACHE_TTL", "soon")

	_, err := FromViper(viper.New())
	require.Error(t, err)
}
