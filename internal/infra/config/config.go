package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Corpus source kinds.
const (
	CorpusFile     = "file"
	CorpusHTTP     = "http"
	CorpusS3       = "s3"
	CorpusPostgres = "postgres"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Widget   WidgetConfig   `yaml:"widget"`
	Matcher  MatcherConfig  `yaml:"matcher"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Sessions SessionsConfig `yaml:"sessions"`
	Stats    StatsConfig    `yaml:"stats"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// WidgetConfig carries the chat widget options. Only notFoundMessage and
// responseDelay affect behaviour; the rest is passed through to clients.
type WidgetConfig struct {
	BotName         string        `yaml:"botName"`
	WelcomeMessage  string        `yaml:"welcomeMessage"`
	PrimaryColor    string        `yaml:"primaryColor"`
	Position        string        `yaml:"position"`
	NotFoundMessage string        `yaml:"notFoundMessage"`
	ResponseDelay   time.Duration `yaml:"responseDelay"`
}

// MatcherConfig exposes the keyword scoring heuristics.
type MatcherConfig struct {
	MinTokenLength  int `yaml:"minTokenLength"`
	TagContainsWord int `yaml:"tagContainsWord"`
	WordContainsTag int `yaml:"wordContainsTag"`
	QuestionBonus   int `yaml:"questionBonus"`
	Threshold       int `yaml:"threshold"`
}

// CorpusConfig selects where the FAQ corpus is loaded from.
type CorpusConfig struct {
	Source      string         `yaml:"source"`
	Path        string         `yaml:"path"`
	Watch       bool           `yaml:"watch"`
	URL         string         `yaml:"url"`
	LoadTimeout time.Duration  `yaml:"loadTimeout"`
	S3          S3Config       `yaml:"s3"`
	Postgres    PostgresConfig `yaml:"postgres"`
}

// S3Config locates the corpus object in S3-compatible storage.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SessionsConfig bounds the live chat sessions.
type SessionsConfig struct {
	IdleTTL     time.Duration `yaml:"idleTtl"`
	MaxSessions int           `yaml:"maxSessions"`
}

// StatsConfig controls query statistics storage.
type StatsConfig struct {
	Top   int         `yaml:"top"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for stats storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("WIDGET_BOT_NAME"); v != "" {
		cfg.Widget.BotName = v
	}
	if v := os.Getenv("WIDGET_WELCOME_MESSAGE"); v != "" {
		cfg.Widget.WelcomeMessage = v
	}
	if v := os.Getenv("WIDGET_NOT_FOUND_MESSAGE"); v != "" {
		cfg.Widget.NotFoundMessage = v
	}
	if v := os.Getenv("WIDGET_RESPONSE_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Widget.ResponseDelay = parsed
		}
	}
	if v := os.Getenv("MATCHER_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Matcher.Threshold = parsed
		}
	}
	if v := os.Getenv("CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = strings.ToLower(v)
	}
	if v := os.Getenv("CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("CORPUS_WATCH"); v != "" {
		cfg.Corpus.Watch = parseBool(v)
	}
	if v := os.Getenv("CORPUS_URL"); v != "" {
		cfg.Corpus.URL = v
	}
	if v := os.Getenv("CORPUS_S3_ENDPOINT"); v != "" {
		cfg.Corpus.S3.Endpoint = v
	}
	if v := os.Getenv("CORPUS_S3_ACCESS_KEY"); v != "" {
		cfg.Corpus.S3.AccessKey = v
	}
	if v := os.Getenv("CORPUS_S3_SECRET_KEY"); v != "" {
		cfg.Corpus.S3.SecretKey = v
	}
	if v := os.Getenv("CORPUS_S3_BUCKET"); v != "" {
		cfg.Corpus.S3.Bucket = v
	}
	if v := os.Getenv("CORPUS_S3_KEY"); v != "" {
		cfg.Corpus.S3.Key = v
	}
	if v := os.Getenv("CORPUS_POSTGRES_DSN"); v != "" {
		cfg.Corpus.Postgres.DSN = v
	}
	if v := os.Getenv("CORPUS_POSTGRES_TABLE"); v != "" {
		cfg.Corpus.Postgres.Table = v
	}
	if v := os.Getenv("SESSIONS_IDLE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Sessions.IdleTTL = parsed
		}
	}
	if v := os.Getenv("SESSIONS_MAX"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Sessions.MaxSessions = parsed
		}
	}
	if v := os.Getenv("STATS_REDIS_ENABLED"); v != "" {
		cfg.Stats.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("STATS_REDIS_ADDR"); v != "" {
		cfg.Stats.Redis.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Widget: WidgetConfig{
			BotName:         "Chat Assistant",
			WelcomeMessage:  "Hi! How can I help you today?",
			PrimaryColor:    "#3b82f6",
			Position:        "bottom-right",
			NotFoundMessage: "I'm sorry, I couldn't find an answer to that question in our FAQ. Please contact our support team for assistance.",
			ResponseDelay:   300 * time.Millisecond,
		},
		Matcher: MatcherConfig{
			MinTokenLength:  2,
			TagContainsWord: 2,
			WordContainsTag: 1,
			QuestionBonus:   10,
			Threshold:       2,
		},
		Corpus: CorpusConfig{
			Source:      CorpusFile,
			Path:        "configs/faq.json",
			LoadTimeout: 10 * time.Second,
			Postgres: PostgresConfig{
				Table:    "faq_entries",
				MaxConns: 2,
			},
		},
		Sessions: SessionsConfig{
			IdleTTL:     30 * time.Minute,
			MaxSessions: 10000,
		},
		Stats: StatsConfig{
			Top: 10,
			Redis: RedisConfig{
				Prefix: "faq",
			},
		},
	}
}

var widgetPositions = map[string]struct{}{
	"bottom-right": {},
	"bottom-left":  {},
	"top-right":    {},
	"top-left":     {},
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Widget.NotFoundMessage) == "" {
		return errors.New("widget.notFoundMessage cannot be empty")
	}
	if c.Widget.ResponseDelay < 0 {
		return errors.New("widget.responseDelay cannot be negative")
	}
	if _, ok := widgetPositions[c.Widget.Position]; !ok {
		return fmt.Errorf("widget.position %q is not supported", c.Widget.Position)
	}
	if c.Matcher.MinTokenLength < 0 {
		return errors.New("matcher.minTokenLength cannot be negative")
	}
	if c.Matcher.Threshold <= 0 {
		return errors.New("matcher.threshold must be positive")
	}
	switch c.Corpus.Source {
	case CorpusFile:
		if strings.TrimSpace(c.Corpus.Path) == "" {
			return errors.New("corpus.path cannot be empty for file source")
		}
	case CorpusHTTP:
		if strings.TrimSpace(c.Corpus.URL) == "" {
			return errors.New("corpus.url cannot be empty for http source")
		}
	case CorpusS3:
		if c.Corpus.S3.Endpoint == "" || c.Corpus.S3.Bucket == "" || c.Corpus.S3.Key == "" {
			return errors.New("corpus.s3 endpoint, bucket and key are required for s3 source")
		}
	case CorpusPostgres:
		if strings.TrimSpace(c.Corpus.Postgres.DSN) == "" {
			return errors.New("corpus.postgres.dsn cannot be empty for postgres source")
		}
	default:
		return fmt.Errorf("corpus.source %q is not supported", c.Corpus.Source)
	}
	if c.Corpus.Watch && c.Corpus.Source != CorpusFile {
		return errors.New("corpus.watch is only supported for file source")
	}
	if c.Sessions.IdleTTL < 0 {
		return errors.New("sessions.idleTtl cannot be negative")
	}
	if c.Sessions.MaxSessions < 0 {
		return errors.New("sessions.maxSessions cannot be negative")
	}
	if c.Stats.Top < 0 {
		return errors.New("stats.top cannot be negative")
	}
	if c.Stats.Redis.Enabled && strings.TrimSpace(c.Stats.Redis.Addr) == "" {
		return errors.New("stats.redis.addr cannot be empty when redis stats are enabled")
	}
	return nil
}
