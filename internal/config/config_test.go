package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, pubfs.ConfigFileName), []byte(content), 0644))
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `hash_algorithm: sha256
overwrite: true
retry:
  attempts: 5
  base_delay: 50ms
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sha256", cfg.HashAlgorithm)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, "50ms", cfg.Retry.BaseDelay)
}

func TestLoad_MinimalYAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "overwrite: true\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, pubfs.DefaultHashAlgorithm, cfg.HashAlgorithm)
	assert.Equal(t, pubfs.DefaultCopyAttempts, cfg.Retry.Attempts)
	assert.True(t, cfg.Overwrite)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{{invalid")

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, pubfs.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, *Default(), *cfg)
}

func TestResolve_NoFilesUsesDefaults(t *testing.T) {
	cfg, err := Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, *Default(), *cfg)

	delay, err := cfg.BaseDelay()
	require.NoError(t, err)
	assert.Equal(t, pubfs.DefaultRetryBaseDelay, delay)
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `hash_algorithm: sha1
retry:
  attempts: 2
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName), []byte(
		"PUBFS_HASH_ALGORITHM=sha256\nPUBFS_RETRY_ATTEMPTS=4\n"), 0644))
	t.Setenv(EnvRetryAttempts, "7")
	t.Setenv(EnvOverwrite, "true")

	cfg, err := Resolve(dir)
	require.NoError(t, err)

	assert.Equal(t, "sha256", cfg.HashAlgorithm, ".env overrides the file")
	assert.Equal(t, 7, cfg.Retry.Attempts, "process environment overrides .env")
	assert.True(t, cfg.Overwrite)
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown algorithm", env: map[string]string{EnvHashAlgorithm: "crc7"}},
		{name: "zero attempts", env: map[string]string{EnvRetryAttempts: "0"}},
		{name: "non-integer attempts", env: map[string]string{EnvRetryAttempts: "many"}},
		{name: "non-boolean overwrite", env: map[string]string{EnvOverwrite: "sometimes"}},
		{name: "bad delay", env: map[string]string{EnvRetryBaseDelay: "soon"}},
		{name: "negative delay", env: map[string]string{EnvRetryBaseDelay: "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Resolve(t.TempDir())
			assert.ErrorIs(t, err, pubfs.ErrInvalidConfig)
		})
	}
}

func TestBaseDelay(t *testing.T) {
	cfg := Default()
	cfg.Retry.BaseDelay = "250ms"
	d, err := cfg.BaseDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	cfg.Retry.BaseDelay = ""
	d, err = cfg.BaseDelay()
	require.NoError(t, err)
	assert.Equal(t, pubfs.DefaultRetryBaseDelay, d)
}
