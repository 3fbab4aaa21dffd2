package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	JudgeURL         string
	JudgeAPIKey      string
	JudgeAPIHost     string
	JudgeTimeout     time.Duration
	TestcaseCacheTTL time.Duration
	MaxCodeLength    int
	NATSURL          string
	SubmissionEvents string
	SubmissionBurst  int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PSG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ProblemSolving API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("judge.url", "https://ce.judge0.com")
	v.SetDefault("judge.api_host", "judge0-ce.p.rapidapi.com")
	v.SetDefault("judge.timeout", "30s")
	v.SetDefault("testcase.cache_ttl", "1h")
	v.SetDefault("max_code_length", 65536)
	v.SetDefault("submission.events_subject", "submissions.graded")
	v.SetDefault("submission.burst", 10)

	ttl, err := time.ParseDuration(v.GetString("testcase.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid testcase cache ttl: %w", err)
	}

	judgeTimeout, err := time.ParseDuration(v.GetString("judge.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid judge timeout: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		JudgeURL:         v.GetString("judge.url"),
		JudgeAPIKey:      v.GetString("judge.api_key"),
		JudgeAPIHost:     v.GetString("judge.api_host"),
		JudgeTimeout:     judgeTimeout,
		TestcaseCacheTTL: ttl,
		MaxCodeLength:    v.GetInt("max_code_length"),
		NATSURL:          v.GetString("nats.url"),
		SubmissionEvents: v.GetString("submission.events_subject"),
		SubmissionBurst:  v.GetInt("submission.burst"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxCodeLength <= 0 {
		cfg.MaxCodeLength = 65536
	}

	if cfg.SubmissionBurst <= 0 {
		cfg.SubmissionBurst = 10
	}

	return cfg, nil
}
