package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr      = ":3000"
	DefaultStaticDir       = "frontend"
	DefaultIndexFile       = "index.html"
	DefaultGeminiURL       = "https://generativelanguage.googleapis.com/v1beta2/models/text-bison-001:generate"
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 300
	DefaultUpstreamTimeout = 60 * time.Second
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	ServerAddr string `yaml:"server_addr"`
	StaticDir  string `yaml:"static_dir"`
	IndexFile  string `yaml:"index_file"`

	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	GeminiURL       string        `yaml:"gemini_url"`
	Temperature     float64       `yaml:"temperature"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	// PgConn enables the ask history journal when set.
	PgConn string `yaml:"pg_conn"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ServerAddr:      DefaultServerAddr,
		StaticDir:       DefaultStaticDir,
		IndexFile:       DefaultIndexFile,
		GeminiURL:       DefaultGeminiURL,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		UpstreamTimeout: DefaultUpstreamTimeout,
	}
}

// Load layers defaults, the optional YAML file at path, the optional env
// file and the process environment, in that order. A missing env file is
// not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg.ServerAddr = getenv("SERVER_ADDR", cfg.ServerAddr)
	cfg.StaticDir = getenv("STATIC_DIR", cfg.StaticDir)
	cfg.IndexFile = getenv("INDEX_FILE", cfg.IndexFile)
	cfg.GeminiAPIKey = getenv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiURL = getenv("GEMINI_URL", cfg.GeminiURL)
	cfg.PgConn = getenv("PG_CONN", cfg.PgConn)

	var err error
	if cfg.Temperature, err = getenvFloat("GEMINI_TEMPERATURE", cfg.Temperature); err != nil {
		return nil, err
	}
	if cfg.MaxOutputTokens, err = getenvInt("GEMINI_MAX_OUTPUT_TOKENS", cfg.MaxOutputTokens); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is missing")
	}
	u, err := url.Parse(c.GeminiURL)
	if err != nil {
		return fmt.Errorf("invalid GEMINI_URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid GEMINI_URL %q: absolute URL required", c.GeminiURL)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", c.MaxOutputTokens)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative, got %s", c.UpstreamTimeout)
	}
	return nil
}

// HistoryEnabled reports whether a Postgres journal is configured.
func (c *Config) HistoryEnabled() bool {
	return c.PgConn != ""
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return f, nil
}

func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func getenvDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}
