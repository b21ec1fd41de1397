package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AuthModeJWT     = "jwt"
	AuthModeSession = "session"

	// MinJWTSecretLength is the shortest HS256 secret accepted.
	MinJWTSecretLength = 32
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL         string   `env:"DATABASE_URL,required,notEmpty"`
	DatabaseReplicaURLs []string `env:"DATABASE_REPLICA_URLS" envSeparator:","`
	SlowQuerySeconds    int      `env:"SLOW_QUERY_SECONDS" envDefault:"10"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	AuthMode       string `env:"AUTH_MODE" envDefault:"jwt"`
	JWTSecret      string `env:"AUTH_JWT_SECRET"`
	AuthCookieName string `env:"AUTH_COOKIE_NAME" envDefault:"inkwell_session"`
	IdPURL         string `env:"IDP_URL"`

	ReadTimeoutSeconds  int `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// The sign-up form checks usernames while the user types
	UsernameCheckRPS   float64 `env:"USERNAME_CHECK_RPS" envDefault:"20"`
	UsernameCheckBurst int     `env:"USERNAME_CHECK_BURST" envDefault:"100"`

	GenerateModels       bool   `env:"GENERATE_MODELS" envDefault:"false"`
	GenerateColumnReport bool   `env:"GENERATE_COLUMN_REPORT" envDefault:"false"`
	GeneratedOutPath     string `env:"GENERATED_OUT_PATH" envDefault:"./generated"`
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthMode {
	case AuthModeJWT:
		if len(c.JWTSecret) < MinJWTSecretLength {
			return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes long, got %d bytes", MinJWTSecretLength, len(c.JWTSecret))
		}
	case AuthModeSession:
		if c.IdPURL == "" {
			return fmt.Errorf("IDP_URL is required when AUTH_MODE=%s", AuthModeSession)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeJWT, AuthModeSession, c.AuthMode)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.UsernameCheckRPS <= 0 || c.UsernameCheckBurst <= 0 {
		return fmt.Errorf("USERNAME_CHECK_RPS and USERNAME_CHECK_BURST must be positive")
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Address binds on all interfaces so the container port is reachable.
func (c Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}

func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

func (c Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQuerySeconds) * time.Second
}
