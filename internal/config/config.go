package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Budgeteer"`
		Port int    `envconfig:"PORT" default:"8000"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"budgetdb"`
	}

	Auth struct {
		JWTKey     string        `envconfig:"JWT_KEY" required:"true"`
		SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	}

	Server struct {
		Timeout    time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigin string        `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	}
}

// ClientConfig configures the TUI. The API base URL is injected here so
// tests and deployments can point the client at any backend.
type ClientConfig struct {
	BaseURL        string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	Timeout        time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	VerifyInterval time.Duration `envconfig:"VERIFY_INTERVAL" default:"30s"`
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process client config: %w", err)
	}

	return &cfg, nil
}
