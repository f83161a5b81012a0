package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the tutor service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseDriver     string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	EventsChannel      string
	LessonCacheTTL     time.Duration
	AIProvider         string
	AIModel            string
	AIBaseURL          string
	AITemperature      float64
	AIMaxTokens        int
	AITimeout          time.Duration
	GoogleAPIKey       string
	OpenAIAPIKey       string
	AnthropicAPIKey    string
	WorkerPoolSize     int
	CORSAllowedOrigins string
	SeedEnabled        bool
	SeedToken          string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env / app.env files.
func Load() (Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("app.env")

	return FromViper(viper.New())
}

// FromViper resolves the configuration from an existing viper instance. Defaults and
// environment bindings are registered on v before values are read.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("TUTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Names used by the original deployment's app.env.
	_ = v.BindEnv("database.url", "TUTOR_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("google_api_key", "TUTOR_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("ai.model", "TUTOR_AI_MODEL", "LLM_MODEL_NAME")
	_ = v.BindEnv("ai.temperature", "TUTOR_AI_TEMPERATURE", "LLM_TEMPERATURE")
	_ = v.BindEnv("openai_api_key", "TUTOR_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("anthropic_api_key", "TUTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	v.SetDefault("app.name", "Tutor API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "tutor.db")
	v.SetDefault("events.channel", "tutor")
	v.SetDefault("lessons.cache_ttl", "5m")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.max_tokens", 2048)
	v.SetDefault("ai.timeout", "0s")
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("cors.allow_origins", "http://localhost:3000")
	v.SetDefault("seed.enabled", false)

	ttl, err := parseDuration(v.GetString("lessons.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid lessons cache ttl: %w", err)
	}

	timeout, err := parseDuration(v.GetString("ai.timeout"), 0)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseDriver:     strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:        strings.TrimSpace(v.GetString("database.url")),
		RedisURL:           strings.TrimSpace(v.GetString("redis.url")),
		NATSURL:            strings.TrimSpace(v.GetString("nats.url")),
		EventsChannel:      strings.TrimSpace(v.GetString("events.channel")),
		LessonCacheTTL:     ttl,
		AIProvider:         strings.ToLower(strings.TrimSpace(v.GetString("ai.provider"))),
		AIModel:            strings.TrimSpace(v.GetString("ai.model")),
		AIBaseURL:          strings.TrimSpace(v.GetString("ai.base_url")),
		AITemperature:      v.GetFloat64("ai.temperature"),
		AIMaxTokens:        v.GetInt("ai.max_tokens"),
		AITimeout:          timeout,
		GoogleAPIKey:       v.GetString("google_api_key"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		AnthropicAPIKey:    v.GetString("anthropic_api_key"),
		WorkerPoolSize:     v.GetInt("worker.pool_size"),
		CORSAllowedOrigins: v.GetString("cors.allow_origins"),
		SeedEnabled:        v.GetBool("seed.enabled"),
		SeedToken:          v.GetString("seed.token"),
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 4
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 2048
	}

	return cfg, nil
}

// AIAPIKey returns the credential for the configured provider.
func (c Config) AIAPIKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return c.GoogleAPIKey
	}
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return fallback, nil
	}
	return d, nil
}
