package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/mockuments/internal/logger"
)

const (
	PoolsBuiltin = "builtin"
	PoolsCSV     = "csv"
	PoolsDB      = "db"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Mockuments"`
		Port int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"120s"`
	}

	Log logger.Config

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"mockuments"`
	}

	Gotenberg struct {
		URL string `envconfig:"GOTENBERG_URL" default:"http://localhost:3000" validate:"url"`
		// Timeout bounds one rasterization. Zero waits indefinitely.
		Timeout time.Duration `envconfig:"GOTENBERG_TIMEOUT" default:"0s"`
	}

	Pools struct {
		Source string `envconfig:"POOLS_SOURCE" default:"builtin" validate:"oneof=builtin csv db"`
		File   string `envconfig:"POOLS_FILE" validate:"required_if=Source csv"`
	}

	Output struct {
		Dir        string `envconfig:"OUTPUT_DIR" default:"./exports"`
		S3Bucket   string `envconfig:"S3_BUCKET"`
		S3Prefix   string `envconfig:"S3_PREFIX" default:"mockuments"`
		AWSRegion  string `envconfig:"AWS_REGION"`
		AWSProfile string `envconfig:"AWS_PROFILE"`
	}

	Generator struct {
		// Seed makes generation reproducible. Zero draws a random seed.
		Seed uint64 `envconfig:"GENERATOR_SEED" default:"0"`
	}

	Capture struct {
		Tilt bool `envconfig:"CAPTURE_TILT" default:"true"`
	}
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

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
