package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. HOSPITAL_SERVER_PORT.
const EnvPrefix = "HOSPITAL"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" split_words:"true"`
	Hospital  HospitalConfig  `mapstructure:"hospital" split_words:"true"`
	Session   SessionConfig   `mapstructure:"session" split_words:"true"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" split_words:"true"`
	CORS      CORSConfig      `mapstructure:"cors" split_words:"true"`
	Log       LogConfig       `mapstructure:"log" split_words:"true"`
	Metrics   MetricsConfig   `mapstructure:"metrics" split_words:"true"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" split_words:"true"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" split_words:"true"`
}

type HospitalConfig struct {
	Name string `mapstructure:"name" split_words:"true"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl" split_words:"true"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" split_words:"true"`
	CookieName      string        `mapstructure:"cookie_name" split_words:"true"`
	SecureCookie    bool          `mapstructure:"secure_cookie" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" split_words:"true"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true"`
	Burst             int     `mapstructure:"burst" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" split_words:"true"`
	Console bool   `mapstructure:"console" split_words:"true"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" split_words:"true"`
	Namespace string `mapstructure:"namespace" split_words:"true"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<10)

	v.SetDefault("hospital.name", "City Hospital")

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)
	v.SetDefault("session.cookie_name", "hospital_session")
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "hospital")
}

// Load reads defaults, then the config file (an explicit path, or
// config.yaml from the usual locations if present), then HOSPITAL_*
// environment overrides.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit requires positive requests_per_second and burst")
	}
	return nil
}
