package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/log"
)

type Config struct {
	Bootstrap

	BotToken   string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminID    string `envconfig:"ADMIN_ID"`
	WebhookURL string `envconfig:"WEBHOOK_URL"`
	Port       int    `envconfig:"PORT" default:"8080"`

	// WebhookSecret is echoed by Telegram in every pushed update.
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"notes_bot.db"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	Workers  int    `envconfig:"WORKERS" default:"8"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Bootstrap is the part of the configuration needed to find the rest of it.
type Bootstrap struct {
	Env       string `envconfig:"GO_ENV" default:"development"`
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-2"`
	SSMPath   string `envconfig:"SSM_PATH" default:"/excelbot/prod/"`
}

func LoadBootstrap() (*Bootstrap, error) {
	var b Bootstrap
	if err := envconfig.Process("", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Bootstrap) IsProduction() bool {
	return b.Env == "production"
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}

	// envconfig only checks presence, an empty token is just as unusable.
	if strings.TrimSpace(c.BotToken) == "" {
		return nil, errors.New("required key TELEGRAM_BOT_TOKEN is empty")
	}
	return &c, nil
}

// Admin returns the configured admin's Telegram ID. ok is false when none is
// configured or the value is not a number, and then nobody is an admin.
func (c *Config) Admin() (id int64, ok bool) {
	raw := strings.TrimSpace(c.AdminID)
	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warnf("ADMIN_ID %q is not a numeric Telegram ID, admin commands are disabled", raw)
		return 0, false
	}
	return id, true
}

// WebhookEndpoint is the URL Telegram pushes updates to, or "" for polling.
func (c *Config) WebhookEndpoint() string {
	if c.WebhookURL == "" {
		return ""
	}
	return strings.TrimRight(c.WebhookURL, "/") + "/" + c.BotToken
}

func (c *Config) Level() log.Lvl {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
