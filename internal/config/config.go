package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// store
	StoreDriver    string `toml:"store_driver"`
	SQLitePath     string `toml:"sqlite_path"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// 0 keeps the pgxpool default
	PostgresMaxConns int32 `toml:"postgres_max_conns"`

	// generated artifacts (dashboard png + report pdf)
	OutputDir string `toml:"output_dir"`
	FontPath  string `toml:"font_path"`

	// outbound mail relay, credentials come with each request
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis is only used for rate limiting report generation; empty host disables it
	RedisHost               string   `toml:"redis_host"`
	RedisPort               string   `toml:"redis_port"`
	GenerateRateLimitPerMin int      `toml:"generate_rate_limit_per_min"`
	AllowedOrigins          []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with defaults applied
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.StoreDriver == "" {
		c.StoreDriver = StoreDriverSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "health_reports.db"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.FontPath == "" {
		c.FontPath = "fonts/NotoSansTC-Regular.ttf"
	}
	if c.SMTPHost == "" {
		c.SMTPHost = "smtp.gmail.com"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "127.0.0.1"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.GenerateRateLimitPerMin == 0 {
		c.GenerateRateLimitPerMin = 30
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverSQLite, StoreDriverMemory:
	case StoreDriverPostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return fmt.Errorf("store driver %s requires postgres_host and postgres_db_name", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.StoreDriver)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// RateLimitEnabled reports whether redis backed rate limiting should be set up
func (c *Config) RateLimitEnabled() bool {
	return c.RedisHost != ""
}
