package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "env-file", "addr", "static-dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, ".env", cmd.Flags().Lookup("env-file").DefValue)
}

func TestRootCmdRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	err := cmd.Execute()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestRootCmdBadConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "askai.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server_addr: [unclosed"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	assert.ErrorContains(t, cmd.Execute(), "parse config file")
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
