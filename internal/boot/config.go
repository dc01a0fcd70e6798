package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env     string `env:"ENV,default=dev"`
	DataDir string `env:"DATA_DIR,default=."`
	Server  struct {
		Port        string `env:"PORT,default=8080"`
		MetricsPort string `env:"METRICS_PORT,default=8081"`
		Origins     string `env:"ALLOWED_ORIGINS,default=*"`
	}
	SMTP struct {
		Host       string        `env:"SMTP_SERVER"`
		Port       int           `env:"SMTP_PORT,default=587"`
		Username   string        `env:"SMTP_USERNAME"`
		Password   string        `env:"SMTP_PASSWORD"`
		SenderName string        `env:"SMTP_SENDER_NAME,default=Structured Communication Gateway"`
		Timeout    time.Duration `env:"SMTP_TIMEOUT,default=30s"`
	}
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) DataDirectory() string {
	return c.DataDir
}
