package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
	Exam struct {
		AutoSubmitOnExpiry bool   `yaml:"auto_submit_on_expiry"`
		TickInterval       string `yaml:"tick_interval"`
		Retention          string `yaml:"retention"`
	} `yaml:"exam"`
	Mentor struct {
		ChatDelay   string `yaml:"chat_delay"`
		WidgetDelay string `yaml:"widget_delay"`
		CacheTTL    string `yaml:"cache_ttl"`
		RateLimit   int    `yaml:"rate_limit"`
		RateWindow  string `yaml:"rate_window"`
	} `yaml:"mentor"`
	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"amqp"`
	Identity struct {
		PublishableKey string `yaml:"publishable_key"`
		SignInRedirect string `yaml:"sign_in_redirect"`
	} `yaml:"identity"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Redis.TTL = "10m"
	cfg.Bank.TTL = "10m"
	cfg.Exam.TickInterval = "1s"
	cfg.Exam.Retention = "30m"
	cfg.Mentor.ChatDelay = "1500ms"
	cfg.Mentor.WidgetDelay = "1000ms"
	cfg.Mentor.CacheTTL = "24h"
	cfg.Mentor.RateLimit = 60
	cfg.Mentor.RateWindow = "1h"
	cfg.AMQP.Exchange = "ea-coach.events"
	cfg.Identity.SignInRedirect = "/dashboard"
	return cfg
}

// Load reads YAML config from path on top of Default, then applies environment
// overrides. A .env file in the working directory is loaded first; a missing
// config file or .env is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	override(&cfg.Identity.PublishableKey, "IDENTITY_PUBLISHABLE_KEY")
	override(&cfg.Redis.Addr, "REDIS_ADDR")
	override(&cfg.Postgres.URL, "DATABASE_URL")
	override(&cfg.AMQP.URL, "AMQP_URL")
	override(&cfg.Log.Level, "LOG_LEVEL")
	if raw := os.Getenv("EXAM_AUTO_SUBMIT"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Exam.AutoSubmitOnExpiry = v
		}
	}
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
