package config

import "github.com/caarlos0/env/v10"

// Config centralizes the service configuration.
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	MetricsAddr   string `env:"METRICS_ADDR"`

	MatchLimit       int     `env:"MATCH_LIMIT" envDefault:"20"`
	MatchMinScore    float64 `env:"MATCH_MIN_SCORE" envDefault:"0.3"`
	OnlyActive       bool    `env:"MATCH_ONLY_ACTIVE" envDefault:"true"`
	ApplyHardFilters bool    `env:"MATCH_APPLY_HARD_FILTERS" envDefault:"true"`

	RecomputeLockTTLSeconds int `env:"RECOMPUTE_LOCK_TTL_SECONDS" envDefault:"300"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
