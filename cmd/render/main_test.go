package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_RequiresExactlyOneFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	for _, args := range [][]string{
		{"--config", cfg},
		{"--config", cfg, "a.json", "b.json"},
	} {
		_, err := execute(t, args...)
		assert.ErrorContains(t, err, "accepts 1 arg(s)", args)
	}
}

func TestRootCmd_ReportsOutcomes(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")

	missing := filepath.Join(dir, "missing.json")
	out, err := execute(t, "--config", cfg, missing)
	require.NoError(t, err)
	assert.Equal(t, "Error: File '"+missing+"' not found.\n", out)

	invalid := filepath.Join(dir, "weather.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"weather":"rain"}`), 0o644))
	out, err = execute(t, "--config", cfg, invalid)
	require.NoError(t, err)
	assert.Equal(t, "Invalid JSON file format for graphing.\n", out)
}

func TestRootCmd_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--config", filepath.Join(dir, "config.yaml"), "--backend", "plotter", filepath.Join(dir, "r.json"))
	assert.ErrorContains(t, err, "unknown backend: plotter")
}
