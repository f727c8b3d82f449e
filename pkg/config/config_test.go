/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config_test.go
Description: Tests for configuration loading. Covers defaults, environment overrides,
config files and validation.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/kleascm/akaylee-automata/pkg/logging"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newViper returns a viper instance with defaults registered
func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

// TestDefaults tests the configuration built from defaults only
func TestDefaults(t *testing.T) {
	v := newViper()
	require.NoError(t, config.LoadConfig(v))

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, logging.LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, logging.LogFormatCustom, cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Logging.MaxFiles)
	assert.Empty(t, cfg.Logging.OutputDir)
	assert.Equal(t, automaton.FormatJSON, cfg.Format)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Empty(t, cfg.MetricsDir)
	assert.Empty(t, cfg.Automaton)
}

// TestEnvironmentOverrides tests AUTOMATA_* variables
func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("AUTOMATA_LOG_LEVEL", "DEBUG")
	t.Setenv("AUTOMATA_FORMAT", "yaml")
	t.Setenv("AUTOMATA_AUTOMATON", "dfa.yaml")
	t.Setenv("AUTOMATA_FETCH_TIMEOUT", "3s")

	v := newViper()
	require.NoError(t, config.LoadConfig(v))

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, logging.LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, automaton.FormatYAML, cfg.Format)
	assert.Equal(t, "dfa.yaml", cfg.Automaton)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
}

// TestConfigFile tests reading settings from a YAML file
func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "automata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level: warn
log_format: json
metrics_dir: `+filepath.Join(dir, "metrics")+`
format: yaml
`), 0644))

	v := newViper()
	v.Set(config.KeyConfig, path)
	require.NoError(t, config.LoadConfig(v))

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, logging.LogLevelWarning, cfg.Logging.Level)
	assert.Equal(t, logging.LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, filepath.Join(dir, "metrics"), cfg.MetricsDir)
	assert.Equal(t, automaton.FormatYAML, cfg.Format)
}

// TestMissingConfigFile tests that a named but absent file is an error
func TestMissingConfigFile(t *testing.T) {
	v := newViper()
	v.Set(config.KeyConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, config.LoadConfig(v))
}

// TestInvalidValues tests validation failures
func TestInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value interface{}
	}{
		{config.KeyFormat, "xml"},
		{config.KeyLogLevel, "loud"},
		{config.KeyLogFormat, "html"},
		{config.KeyFetchTimeout, "0s"},
	}

	for _, tt := range tests {
		v := newViper()
		v.Set(tt.key, tt.value)
		_, err := config.FromViper(v)
		assert.Error(t, err, tt.key)
	}
}
