package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tailscale/hujson"

	"github.com/amirbrooks/tpm/internal/taskpaper"
)

var ErrInvalid = errors.New("invalid config")

// Config drives one run. Field tags are the keys accepted in config files
// and, upper-cased with a TPM_ prefix, in the environment.
type Config struct {
	Due      DueConfig      `mapstructure:"due"`
	Today    string         `mapstructure:"today"`
	Mail     MailConfig     `mapstructure:"mail"`
	Pushover PushoverConfig `mapstructure:"pushover"`
	Review   ReviewConfig   `mapstructure:"review"`
}

type DueConfig struct {
	Unit   string `mapstructure:"unit"`
	Amount int    `mapstructure:"amount"`
}

type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Server   string `mapstructure:"smtp_server"`
	Port     int    `mapstructure:"smtp_port"`
	User     string `mapstructure:"smtp_user"`
	Password string `mapstructure:"smtp_password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
	Subject  string `mapstructure:"subject"`
}

type PushoverConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Token    string `mapstructure:"token"`
	User     string `mapstructure:"user"`
	Limit    int    `mapstructure:"limit"`
	Endpoint string `mapstructure:"endpoint"`
}

type ReviewConfig struct {
	Path      string `mapstructure:"path"`
	Agenda    bool   `mapstructure:"agenda"`
	Waiting   bool   `mapstructure:"waiting"`
	Customers bool   `mapstructure:"customers"`
	Projects  bool   `mapstructure:"projects"`
	Maybe     bool   `mapstructure:"maybe"`
	HTML      bool   `mapstructure:"html"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("due.unit", "days")
	v.SetDefault("due.amount", 3)
	v.SetDefault("today", "")
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.smtp_server", "")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.smtp_user", "")
	v.SetDefault("mail.smtp_password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.subject", "Daily tasks")
	v.SetDefault("pushover.enabled", false)
	v.SetDefault("pushover.token", "")
	v.SetDefault("pushover.user", "")
	v.SetDefault("pushover.limit", 1024)
	v.SetDefault("pushover.endpoint", "https://api.pushover.net/1/messages.json")
	v.SetDefault("review.path", "")
	v.SetDefault("review.agenda", true)
	v.SetDefault("review.waiting", true)
	v.SetDefault("review.customers", true)
	v.SetDefault("review.projects", false)
	v.SetDefault("review.maybe", true)
	v.SetDefault("review.html", true)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path (yaml, toml, ini, json or jsonc by extension) over the
// defaults and applies TPM_* environment overrides. An empty path loads
// defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TPM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		if err := readFile(v, path); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json", "jsonc", "hujson":
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		std, err := hujson.Standardize(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(std)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
		return nil
	case "yaml", "yml", "toml", "ini", "cfg":
		if ext == "cfg" {
			ext = "ini"
		}
		v.SetConfigFile(path)
		v.SetConfigType(ext)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("read config: %w", err)
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
}

// Validate checks values that cannot be expressed by types alone.
func (c Config) Validate() error {
	if _, err := c.DueDelta(); err != nil {
		return fmt.Errorf("%w: due: %v", ErrInvalid, err)
	}
	if c.Today != "" {
		if _, err := taskpaper.ParseDate(c.Today); err != nil {
			return fmt.Errorf("%w: today: %v", ErrInvalid, err)
		}
	}
	if c.Mail.Enabled {
		if c.Mail.Server == "" || c.Mail.From == "" || c.Mail.To == "" {
			return fmt.Errorf("%w: mail needs smtp_server, from and to", ErrInvalid)
		}
	}
	if c.Pushover.Enabled && (c.Pushover.Token == "" || c.Pushover.User == "") {
		return fmt.Errorf("%w: pushover needs token and user", ErrInvalid)
	}
	if c.Pushover.Limit <= 0 {
		return fmt.Errorf("%w: pushover.limit must be positive", ErrInvalid)
	}
	return nil
}

func (c Config) DueDelta() (taskpaper.DueDelta, error) {
	return taskpaper.ParseDueDelta(c.Due.Unit, c.Due.Amount)
}

// TodayOr returns the configured date, or now truncated to a day.
func (c Config) TodayOr(now time.Time) time.Time {
	if c.Today != "" {
		if d, err := taskpaper.ParseDate(c.Today); err == nil {
			return d
		}
	}
	return taskpaper.Day(now)
}

// Options builds the pipeline inputs.
func (c Config) Options(now time.Time) (taskpaper.Options, error) {
	delta, err := c.DueDelta()
	if err != nil {
		return taskpaper.Options{}, err
	}
	return taskpaper.Options{Today: c.TodayOr(now), Delta: delta}, nil
}
