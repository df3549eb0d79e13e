// README: Config loader; PLANNER_-prefixed env vars and an optional planner.yaml, with defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tripplanner/internal/ai"
)

type Config struct {
	Env string
	Log struct {
		Level string
	}
	HTTP struct {
		Addr string
	}
	// Redis.Addr empty keeps sessions in process memory.
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	// DB.DSN empty disables the AI usage quota.
	DB struct {
		DSN string
	}
	AI struct {
		Provider      string
		Model         string
		BaseURL       string
		MaxTokens     int
		Timeout       time.Duration
		CredentialEnv string
	}
	// Maps.APIKey empty disables inter-city travel estimates.
	Maps struct {
		APIKey string
	}
	// Firebase.ProjectID empty leaves the API unauthenticated.
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	// Session.LockTTL zero derives the lock lifetime from OperationTimeout.
	Session struct {
		TTL     time.Duration
		LockTTL time.Duration
	}
	RateLimit struct {
		PerMinute int
		Burst     int
	}
	Quota struct {
		Monthly int
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("db.dsn", "")
	v.SetDefault("ai.provider", ai.ProviderHuggingFace)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.max_tokens", ai.DefaultMaxTokens)
	v.SetDefault("ai.timeout", "90s")
	v.SetDefault("ai.credential_env", ai.DefaultCredentialEnv)
	v.SetDefault("maps.api_key", "")
	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_file", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.lock_ttl", "0s")
	v.SetDefault("rate_limit.per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("quota.monthly", 100)
}

// Load reads configuration from the environment (PLANNER_HTTP_ADDR, PLANNER_AI_PROVIDER, ...)
// and, when present, planner.yaml in the working directory or ./config.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("planner")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read planner.yaml: %w", err)
		}
	}

	var cfg Config
	cfg.Env = v.GetString("env")
	cfg.Log.Level = v.GetString("log.level")
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.AI.Provider = v.GetString("ai.provider")
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.BaseURL = v.GetString("ai.base_url")
	cfg.AI.MaxTokens = v.GetInt("ai.max_tokens")
	cfg.AI.Timeout = v.GetDuration("ai.timeout")
	cfg.AI.CredentialEnv = v.GetString("ai.credential_env")
	cfg.Maps.APIKey = v.GetString("maps.api_key")
	cfg.Firebase.ProjectID = v.GetString("firebase.project_id")
	cfg.Firebase.CredentialsFile = v.GetString("firebase.credentials_file")
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Session.LockTTL = v.GetDuration("session.lock_ttl")
	cfg.RateLimit.PerMinute = v.GetInt("rate_limit.per_minute")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")
	cfg.Quota.Monthly = v.GetInt("quota.monthly")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction switches logging to JSON output.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

const (
	// operationGrace covers prompt assembly and maps lookups around the AI call.
	operationGrace = 30 * time.Second
	lockMargin     = time.Minute
)

// OperationTimeout bounds one research/plan/tips request end to end.
func (c Config) OperationTimeout() time.Duration {
	return c.AI.Timeout + operationGrace
}

// LockTTL is how long a session lock survives a crashed holder.
// It always outlives OperationTimeout.
func (c Config) LockTTL() time.Duration {
	if c.Session.LockTTL > 0 {
		return c.Session.LockTTL
	}
	return c.OperationTimeout() + lockMargin
}

func (c Config) validate() error {
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("config: ai.max_tokens must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("config: ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	if c.Session.LockTTL < 0 {
		return fmt.Errorf("config: session.lock_ttl must not be negative")
	}
	if c.Session.LockTTL > 0 && c.Session.LockTTL <= c.OperationTimeout() {
		return fmt.Errorf("config: session.lock_ttl %s must exceed the operation timeout %s",
			c.Session.LockTTL, c.OperationTimeout())
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("config: rate_limit.per_minute must not be negative")
	}
	switch strings.ToLower(c.AI.Provider) {
	case ai.ProviderHuggingFace, ai.ProviderGemini, ai.ProviderAnthropic:
	default:
		return fmt.Errorf("config: %w: %q", ai.ErrUnknownProvider, c.AI.Provider)
	}
	return nil
}
