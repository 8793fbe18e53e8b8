package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"entregador/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Notify     NotifyConfig     `mapstructure:"notify"`
}

// DatabaseConfig contains local storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite database file path
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	DevBypassCode string        `mapstructure:"dev_bypass_code"`
	MinCodeLength int           `mapstructure:"min_code_length"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Mode       string `mapstructure:"mode"` // debug | release
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts to logger options.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// SimulationConfig holds the artificial latencies that pace the UX.
type SimulationConfig struct {
	LoadDelay     time.Duration `mapstructure:"load_delay"`
	LoginDelay    time.Duration `mapstructure:"login_delay"`
	CollectDelay  time.Duration `mapstructure:"collect_delay"`
	DeliverDelay  time.Duration `mapstructure:"deliver_delay"`
	NavigateDelay time.Duration `mapstructure:"navigate_delay"`
}

// NotifyConfig contains toast settings.
type NotifyConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// envBindings keeps the flat environment variable names.
var envBindings = map[string]string{
	"database.path":             "DB_PATH",
	"auth.jwt_secret":           "JWT_SECRET",
	"auth.dev_bypass_code":      "DEV_BYPASS_CODE",
	"auth.min_code_length":      "MIN_CODE_LENGTH",
	"auth.session_ttl":          "SESSION_TTL",
	"log.mode":                  "LOG_MODE",
	"log.dir":                   "LOG_DIR",
	"simulation.load_delay":     "SIM_LOAD_DELAY",
	"simulation.login_delay":    "SIM_LOGIN_DELAY",
	"simulation.collect_delay":  "SIM_COLLECT_DELAY",
	"simulation.deliver_delay":  "SIM_DELIVER_DELAY",
	"simulation.navigate_delay": "SIM_NAVIGATE_DELAY",
	"notify.toast_duration":     "TOAST_DURATION",
}

func newViper(jwtDefault string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("database.path", "entregador.db")
	v.SetDefault("auth.jwt_secret", jwtDefault)
	v.SetDefault("auth.dev_bypass_code", "teste")
	v.SetDefault("auth.min_code_length", 6)
	v.SetDefault("auth.session_ttl", "720h")
	v.SetDefault("log.mode", "release")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "entregador.log")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("simulation.load_delay", "1s")
	v.SetDefault("simulation.login_delay", "1s")
	v.SetDefault("simulation.collect_delay", "1500ms")
	v.SetDefault("simulation.deliver_delay", "2s")
	v.SetDefault("simulation.navigate_delay", "800ms")
	v.SetDefault("notify.toast_duration", "3s")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return v, nil
}

func load(jwtDefault string) (*Config, error) {
	v, err := newViper(jwtDefault)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Auth.MinCodeLength <= 0 {
		return nil, fmt.Errorf("MIN_CODE_LENGTH must be positive, got %d", cfg.Auth.MinCodeLength)
	}
	cfg.Auth.DevBypassCode = strings.TrimSpace(cfg.Auth.DevBypassCode)
	return &cfg, nil
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me")
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, Log: %s, Auth: *** (masked) ***}", c.Database.Path, c.Log.Mode)
}
