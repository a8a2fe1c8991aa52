package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int `yaml:"port"`
		MaxTextBytes int `yaml:"maxTextBytes"`
	} `yaml:"server"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	Auth struct {
		APIKey string `yaml:"apiKey"`
	} `yaml:"auth"`

	RateLimit struct {
		Enabled    bool `yaml:"enabled"`
		Capacity   int  `yaml:"capacity"`
		RefillRate int  `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	Sentry struct {
		DSN         string `yaml:"dsn"`
		Environment string `yaml:"environment"`
		Release     string `yaml:"release"`
	} `yaml:"sentry"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load baca file config.yaml kalau ada, lalu terapkan env overrides.
// Tanpa file pun service tetap jalan penuh dari env + defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// config file optional
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getIntEnv("PORT", c.Server.Port)
	c.Server.MaxTextBytes = getIntEnv("MAX_TEXT_BYTES", c.Server.MaxTextBytes)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORS.Origins = splitOrigins(v)
	}
	c.Auth.APIKey = getEnv("API_KEY", c.Auth.APIKey)
	c.RateLimit.Enabled = getBoolEnv("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.Capacity = getIntEnv("RATE_LIMIT_CAPACITY", c.RateLimit.Capacity)
	c.RateLimit.RefillRate = getIntEnv("RATE_LIMIT_REFILL_RATE", c.RateLimit.RefillRate)
	c.Sentry.DSN = getEnv("SENTRY_DSN", c.Sentry.DSN)
	c.Sentry.Environment = getEnv("SENTRY_ENVIRONMENT", c.Sentry.Environment)
	c.Sentry.Release = getEnv("SENTRY_RELEASE", c.Sentry.Release)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if c.Server.MaxTextBytes == 0 {
		c.Server.MaxTextBytes = 1 << 20
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"*"}
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 60
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
