// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongodb"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required,oneof=sqlite mongodb"`
	Filename string `yaml:"filename" validate:"required_if=Driver sqlite"`
	// URL is the MongoDB connection string. Usually supplied through
	// DATABASE_URL rather than the yaml file.
	URL  string `yaml:"url,omitempty" validate:"required_if=Driver mongodb"`
	Name string `yaml:"name,omitempty"`
}

type PointsConfig struct {
	Win  int `yaml:"win" validate:"gte=0"`
	Loss int `yaml:"loss" validate:"gte=0"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name" validate:"required"`
		Environment     string        `yaml:"environment" validate:"oneof=development production test"`
		Port            int           `yaml:"port" validate:"required,gt=0,lt=65536"`
		StaticDir       string        `yaml:"static_dir"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Points PointsConfig `yaml:"points"`

	Scheduler struct {
		Enabled bool `yaml:"enabled"`
		// PointsRefresh is a standard five-field cron expression.
		PointsRefresh string `yaml:"points_refresh" validate:"required_if=Enabled true"`
	} `yaml:"scheduler"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Default returns the configuration used when no config file exists: a local
// SQLite database and the standard 3/1 points rules.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "leagus"
	cfg.App.Environment = EnvDevelopment
	cfg.App.Port = 8080
	cfg.App.StaticDir = "static"
	cfg.App.ShutdownTimeout = 30 * time.Second
	cfg.Database.Driver = DriverSQLite
	cfg.Database.Filename = filepath.Join("data", "leagus.db")
	cfg.Points = PointsConfig{Win: 3, Loss: 1}
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.PointsRefresh = "*/15 * * * *"
	cfg.Features.EnableMetrics = true
	return &cfg
}

// Load loads both .env and yaml configuration. A missing yaml file is not
// an error; the defaults are used and environment overrides still apply.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv lets the environment override the yaml file.
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("ENVIRONMENT"); ok {
		c.App.Environment = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.App.Port = port
	}
	if v, ok := os.LookupEnv("STATIC_DIR"); ok {
		c.App.StaticDir = v
	}
	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS %q: %w", v, err)
		}
		c.App.ShutdownTimeout = time.Duration(secs) * time.Second
	}
	if v, ok := os.LookupEnv("DATABASE_DRIVER"); ok {
		c.Database.Driver = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("DATABASE_FILENAME"); ok {
		c.Database.Filename = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		c.Database.URL = v
	}
	if v, ok := os.LookupEnv("DATABASE_NAME"); ok {
		c.Database.Name = v
	}
	return nil
}

func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return err
	}

	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.PointsRefresh); err != nil {
			return fmt.Errorf("invalid scheduler.points_refresh %q: %w", c.Scheduler.PointsRefresh, err)
		}
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}
