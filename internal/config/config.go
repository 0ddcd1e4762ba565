package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig   `toml:"server"`
	Database      DatabaseConfig `toml:"database"`
	Logs          LogsConfig     `toml:"logs"`
	Metrics       MetricsConfig  `toml:"metrics"`
	Holds         HoldsConfig    `toml:"holds"`
	DefaultTenant string         `toml:"default_tenant"`
	Tenants       []TenantConfig `toml:"tenants"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// TenantConfig дополнительный тенант (барбершоп) со своей базой
type TenantConfig struct {
	Slug     string         `toml:"slug"`
	Database DatabaseConfig `toml:"database"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// HoldsConfig настройки временных блокировок слотов
type HoldsConfig struct {
	TTLMinutes      int    `toml:"ttl_minutes"`
	CleanupSchedule string `toml:"cleanup_schedule"` // cron выражение
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.DefaultTenant == "" {
		c.DefaultTenant = "main"
	}
	if c.Holds.TTLMinutes == 0 {
		c.Holds.TTLMinutes = 10
	}
	if c.Holds.CleanupSchedule == "" {
		c.Holds.CleanupSchedule = "*/5 * * * *"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}

	seen := map[string]bool{c.DefaultTenant: true}
	for _, t := range c.Tenants {
		if t.Slug == "" {
			return fmt.Errorf("config: tenant slug is required")
		}
		if seen[t.Slug] {
			return fmt.Errorf("config: duplicate tenant slug %q", t.Slug)
		}
		seen[t.Slug] = true
		if t.Database.Host == "" || t.Database.DBName == "" {
			return fmt.Errorf("config: tenant %q database is incomplete", t.Slug)
		}
	}

	return nil
}
