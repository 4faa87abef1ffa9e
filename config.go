package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"

	"github.com/dtrivino/portfolio/internal/content"
)

const (
	defaultPort             = 8080
	defaultDBPath           = "portfolio.db"
	defaultAdminUsername    = "admin"
	defaultAdminPassword    = "admin123"
	defaultSMTPHost         = "smtp.gmail.com"
	defaultSMTPPort         = 587
	defaultVisitorRetention = 365 * 24 * time.Hour
)

// appConfig is everything the server reads from the environment or config file.
type appConfig struct {
	Port             int           `mapstructure:"port"`
	GinMode          string        `mapstructure:"gin-mode"`
	LogLevel         string        `mapstructure:"log-level"`
	DBPath           string        `mapstructure:"db-path"`
	AdminUsername    string        `mapstructure:"admin-username"`
	AdminPassword    string        `mapstructure:"admin-password"`
	SMTPHost         string        `mapstructure:"smtp-host"`
	SMTPPort         int           `mapstructure:"smtp-port"`
	SMTPUser         string        `mapstructure:"smtp-user"`
	SMTPPass         string        `mapstructure:"smtp-pass"`
	ToEmail          string        `mapstructure:"to-email"`
	TypedPhrases     string        `mapstructure:"typed-phrases"`
	VisitorRetention time.Duration `mapstructure:"visitor-retention"`
	ConfigPath       string        `mapstructure:"-"`
}

// Phrases splits TypedPhrases on commas. An explicitly empty setting
// yields no phrases, which turns the hero animation off.
func (c appConfig) Phrases() []string {
	var out []string
	for _, p := range strings.Split(c.TypedPhrases, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Addr is the listen address.
func (c appConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// loadConfig reads settings from the environment (PORT, SMTP_HOST, ...) and,
// if configPath is set, from that file. Environment values win.
func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("port", defaultPort)
	v.SetDefault("gin-mode", "debug")
	v.SetDefault("log-level", "info")
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("admin-username", "")
	v.SetDefault("admin-password", "")
	v.SetDefault("smtp-host", defaultSMTPHost)
	v.SetDefault("smtp-port", defaultSMTPPort)
	v.SetDefault("smtp-user", "")
	v.SetDefault("smtp-pass", "")
	v.SetDefault("to-email", "")
	v.SetDefault("typed-phrases", strings.Join(content.HeroPhrases, ","))
	v.SetDefault("visitor-retention", defaultVisitorRetention)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading %s: %w", configPath, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	// viper skips empty env vars; an empty TYPED_PHRASES disables the hero.
	if phrases, ok := os.LookupEnv("TYPED_PHRASES"); ok {
		cfg.TypedPhrases = phrases
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return cfg, fmt.Errorf("invalid smtp-port: %d", cfg.SMTPPort)
	}
	if cfg.VisitorRetention <= 0 {
		return cfg, fmt.Errorf("visitor-retention must be positive, got %s", cfg.VisitorRetention)
	}
	return cfg, nil
}

// adminCredentials falls back to development defaults when unset.
func (c appConfig) adminCredentials(logger *slog.Logger) (string, string) {
	user, pass := c.AdminUsername, c.AdminPassword
	if user == "" {
		user = defaultAdminUsername
		logger.Warn("using default admin username, set ADMIN_USERNAME")
	}
	if pass == "" {
		pass = defaultAdminPassword
		logger.Warn("using default admin password, set ADMIN_PASSWORD")
	}
	return user, pass
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
