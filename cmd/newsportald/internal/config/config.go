package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"go.akpain.net/cfger"
)

// DefaultUserAgent is a desktop browser user agent, sent on every upstream
// request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Config struct {
	HTTPAddress     string        `validate:"required"`
	UpstreamURL     string        `validate:"required,url"`
	ImageBaseURL    string        `validate:"required,url"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
	UserAgent       string        `validate:"required"`
	ViewTTL         time.Duration `validate:"gt=0"`
	SiteURL         string        `validate:"omitempty,url"`
	TrustProxy      bool
	Timezone        string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogFormat       string        `validate:"oneof=text json"`

	Location *time.Location `validate:"-"`
}

func Get() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	cl := cfger.New()

	upstreamTimeout, err := parseDuration("NEWSPORTAL_UPSTREAM_TIMEOUT", cl.GetEnv("NEWSPORTAL_UPSTREAM_TIMEOUT").WithDefault("10s").AsString())
	if err != nil {
		return nil, err
	}

	viewTTL, err := parseDuration("NEWSPORTAL_VIEW_TTL", cl.GetEnv("NEWSPORTAL_VIEW_TTL").WithDefault("30m").AsString())
	if err != nil {
		return nil, err
	}

	trustProxy, err := parseBool("NEWSPORTAL_TRUST_PROXY", cl.GetEnv("NEWSPORTAL_TRUST_PROXY").WithDefault("false").AsString())
	if err != nil {
		return nil, err
	}

	var conf = &Config{
		HTTPAddress:     cl.GetEnv("NEWSPORTAL_HTTP_ADDR").WithDefault(":8080").AsString(),
		UpstreamURL:     cl.GetEnv("NEWSPORTAL_UPSTREAM_URL").WithDefault("https://backend.ascww.org/api").AsString(),
		ImageBaseURL:    cl.GetEnv("NEWSPORTAL_IMAGE_BASE_URL").WithDefault("https://backend.ascww.org/api/news/image/").AsString(),
		UpstreamTimeout: upstreamTimeout,
		UserAgent:       cl.GetEnv("NEWSPORTAL_USER_AGENT").WithDefault(DefaultUserAgent).AsString(),
		ViewTTL:         viewTTL,
		SiteURL:         cl.GetEnv("NEWSPORTAL_SITE_URL").WithDefault("").AsString(),
		TrustProxy:      trustProxy,
		Timezone:        cl.GetEnv("NEWSPORTAL_TIMEZONE").WithDefault("Africa/Cairo").AsString(),
		LogLevel:        strings.ToLower(cl.GetEnv("NEWSPORTAL_LOG_LEVEL").WithDefault("info").AsString()),
		LogFormat:       strings.ToLower(cl.GetEnv("NEWSPORTAL_LOG_FORMAT").WithDefault("text").AsString()),
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks field values and resolves Location from Timezone.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	c.UpstreamURL = strings.TrimSuffix(c.UpstreamURL, "/")
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	return nil
}

// Logger builds the process logger described by LogLevel and LogFormat.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return d, nil
}

func parseBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return b, nil
}
