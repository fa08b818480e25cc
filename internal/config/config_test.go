package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_ADDR", "STATIC_DIR", "INDEX_FILE", "GEMINI_API_KEY", "GEMINI_URL",
	"GEMINI_TEMPERATURE", "GEMINI_MAX_OUTPUT_TOKENS", "UPSTREAM_TIMEOUT", "PG_CONN",
}

// clearEnv unsets the config variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
	assert.Equal(t, DefaultIndexFile, cfg.IndexFile)
	assert.Equal(t, DefaultGeminiURL, cfg.GeminiURL)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, DefaultMaxOutputTokens, cfg.MaxOutputTokens)
	assert.Equal(t, DefaultUpstreamTimeout, cfg.UpstreamTimeout)
	assert.False(t, cfg.HistoryEnabled())
}

func TestLoadLayering(t *testing.T) {
	clearEnv(t)

	yamlPath := writeFile(t, "askai.yaml", `
server_addr: ":8081"
static_dir: "public"
gemini_api_key: "from-yaml"
temperature: 0.7
upstream_timeout: 5s
`)
	envPath := writeFile(t, ".env", "GEMINI_API_KEY=from-dotenv\nSTATIC_DIR=dist\n")
	t.Setenv("STATIC_DIR", "www")

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.ServerAddr, "yaml overrides default")
	assert.Equal(t, "from-dotenv", cfg.GeminiAPIKey, "env file overrides yaml")
	assert.Equal(t, "www", cfg.StaticDir, "process env wins over env file")
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load("", filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"GEMINI_TEMPERATURE":       "warm",
		"GEMINI_MAX_OUTPUT_TOKENS": "many",
		"UPSTREAM_TIMEOUT":         "soon",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)

			_, err := Load("", "")
			assert.ErrorContains(t, err, k)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.GeminiAPIKey = "" }, wantErr: "GEMINI_API_KEY"},
		{name: "relative url", mutate: func(c *Config) { c.GeminiURL = "/generate" }, wantErr: "absolute URL"},
		{name: "bad url", mutate: func(c *Config) { c.GeminiURL = "http://[::1" }, wantErr: "invalid GEMINI_URL"},
		{name: "zero tokens", mutate: func(c *Config) { c.MaxOutputTokens = 0 }, wantErr: "max output tokens"},
		{name: "negative timeout", mutate: func(c *Config) { c.UpstreamTimeout = -time.Second }, wantErr: "upstream timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.GeminiAPIKey = "key"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
