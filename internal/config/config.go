// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type APIConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	PoolSize int    `yaml:"pool_size"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty disables the user cache
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type MailConfig struct {
	Host     string `yaml:"host"` // empty selects the noop sender
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ReportConfig struct {
	Cron     string `yaml:"cron"`     // monthly summary trigger
	Timezone string `yaml:"timezone"` // IANA zone for period boundaries
}

type DispatcherConfig struct {
	Workers       int `yaml:"workers"`
	QueueCapacity int `yaml:"queue_capacity"`
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	API        APIConfig        `yaml:"api"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Mail       MailConfig       `yaml:"mail"`
	Report     ReportConfig     `yaml:"report"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`

	Runtime RuntimeConfig `yaml:"-"`
}

// The mail pool starts small and is capped hard: the upstream transport
// tolerates at most this many concurrent sends.
const (
	defaultDispatchWorkers = 5
	maxDispatchWorkers     = 50
	defaultQueueCapacity   = 1000
)

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.Database.PoolSize <= 0 {
		cfg.Database.PoolSize = 10
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "FitnessTrackerWSB@ftwsb.com"
	}
	if cfg.Report.Cron == "" {
		// 00:00 on day 1 of each month
		cfg.Report.Cron = "0 0 1 * *"
	}
	if cfg.Report.Timezone == "" {
		cfg.Report.Timezone = "UTC"
	}
	if cfg.Dispatcher.Workers <= 0 {
		cfg.Dispatcher.Workers = defaultDispatchWorkers
	}
	if cfg.Dispatcher.Workers > maxDispatchWorkers {
		cfg.Dispatcher.Workers = maxDispatchWorkers
	}
	if cfg.Dispatcher.QueueCapacity <= 0 {
		cfg.Dispatcher.QueueCapacity = defaultQueueCapacity
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
