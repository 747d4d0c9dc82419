package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Hint      HintConfig      `yaml:"hint" mapstructure:"hint"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Session   SessionConfig   `yaml:"session" mapstructure:"session"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the merit dataset backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// HintConfig configures the optional model-assisted slot extraction.
type HintConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs       int  `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerMinute int  `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// ServerConfig configures the chat server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// SessionConfig configures dialogue session retention.
type SessionConfig struct {
	TTLMinutes             int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
	JanitorIntervalMinutes int `yaml:"janitor_interval_minutes" mapstructure:"janitor_interval_minutes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MERITBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys that default to empty still need registering so
	// AutomaticEnv feeds them into Unmarshal.
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "merits.db")
	v.SetDefault("store.database_url", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("hint.enabled", false)
	v.SetDefault("hint.timeout_secs", 10)
	v.SetDefault("hint.requests_per_minute", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("session.ttl_minutes", 30)
	v.SetDefault("session.janitor_interval_minutes", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
