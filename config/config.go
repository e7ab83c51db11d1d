package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL" envDefault:"postgresql://postgres@localhost:5432/codecrew"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTExpiration   time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	ServerPort      string        `env:"PORT" envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	UploadsDir      string        `env:"UPLOADS_DIR" envDefault:"uploads"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`

	Log       LogConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// RateLimitConfig throttles the register and login endpoints per client IP.
// Counters live in Redis when RedisAddr is set, in memory otherwise.
type RateLimitConfig struct {
	Limit         int           `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	Window        time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
}

// SeedConfig describes a team leader account created at startup when the
// email is set. There is no API to promote a user, so a fresh install needs it.
type SeedConfig struct {
	LeaderName     string `env:"SEED_LEADER_NAME" envDefault:"Team Leader"`
	LeaderEmail    string `env:"SEED_LEADER_EMAIL"`
	LeaderPassword string `env:"SEED_LEADER_PASSWORD"`
}

var ErrMissingSecret = errors.New("config: JWT_SECRET must be set")

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST out of range: %d", c.BcryptCost)
	}
	if c.Seed.LeaderEmail != "" && c.Seed.LeaderPassword == "" {
		return errors.New("config: SEED_LEADER_PASSWORD is required with SEED_LEADER_EMAIL")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
