// Package config loads planner configuration with the hierarchy:
// defaults < YAML file < environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "planner.yaml"

// Config holds every tunable the planner binaries read.
type Config struct {
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	Narrator struct {
		Addr    string        `yaml:"addr"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"narrator"`
	Server struct {
		HTTPAddr string `yaml:"http_addr"`
	} `yaml:"server"`
	Planner struct {
		UpperThreshold float64 `yaml:"upper_threshold"`
		LowerThreshold float64 `yaml:"lower_threshold"`
		MaxRetries     int     `yaml:"max_retries"`
	} `yaml:"planner"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	var cfg Config
	cfg.Storage.DBPath = "demand_planner.db"
	cfg.Narrator.Addr = "localhost:50051"
	cfg.Narrator.Timeout = 30 * time.Second
	cfg.Server.HTTPAddr = ":8080"
	cfg.Planner.UpperThreshold = 0.30
	cfg.Planner.LowerThreshold = -0.20
	cfg.Planner.MaxRetries = 2
	return cfg
}

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom loads configuration from the given YAML path.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg. Only non-empty
// values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Storage.DBPath, "PLANNER_DB")
	setString(&cfg.Narrator.Addr, "NARRATOR_ADDR")
	setDuration(&cfg.Narrator.Timeout, "NARRATOR_TIMEOUT")
	setString(&cfg.Server.HTTPAddr, "PLANNER_HTTP_ADDR")
	setFloat64(&cfg.Planner.UpperThreshold, "PLANNER_UPPER_THRESHOLD")
	setFloat64(&cfg.Planner.LowerThreshold, "PLANNER_LOWER_THRESHOLD")
	setInt(&cfg.Planner.MaxRetries, "PLANNER_MAX_RETRIES")
}

func validate(cfg *Config) error {
	if cfg.Storage.DBPath == "" {
		return errors.New("storage.db_path is required")
	}
	if cfg.Planner.UpperThreshold <= cfg.Planner.LowerThreshold {
		return errors.New("planner.upper_threshold must exceed planner.lower_threshold")
	}
	if cfg.Planner.MaxRetries < 1 {
		return errors.New("planner.max_retries must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
