/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for the automata tools. Settings come from command-line
flags, an optional config file and AUTOMATA_* environment variables, all merged by
viper, and are validated before any input is read.
*/

package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the tools
const EnvPrefix = "AUTOMATA"

// Viper keys
const (
	KeyConfig       = "config"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyLogDir       = "log_dir"
	KeyLogMaxFiles  = "log_max_files"
	KeyLogColors    = "log_colors"
	KeyMetricsDir   = "metrics_dir"
	KeyFormat       = "format"
	KeyFetchTimeout = "fetch_timeout"
	KeyAutomaton    = "automaton"
	KeyOutput       = "output"
	KeyExamples     = "examples"
	KeyReport       = "report"
)

// Config holds the settings shared by every command
type Config struct {
	Logging      logging.LoggerConfig `json:"logging"`
	MetricsDir   string               `json:"metrics_dir"`   // empty disables metrics files
	Format       automaton.Format     `json:"format"`        // description output format
	FetchTimeout time.Duration        `json:"fetch_timeout"` // timeout for http(s) inputs
	Automaton    string               `json:"automaton"`     // description location for recognize/verify/export
	Output       string               `json:"output"`        // description destination for learn/export
	Examples     string               `json:"examples"`      // labeled word stream for verify
	Report       string               `json:"report"`        // agreement report destination for verify
}

// SetDefaults registers default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, string(logging.LogLevelInfo))
	v.SetDefault(KeyLogFormat, string(logging.LogFormatCustom))
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyLogMaxFiles, 10)
	v.SetDefault(KeyLogColors, false)
	v.SetDefault(KeyMetricsDir, "")
	v.SetDefault(KeyFormat, string(automaton.FormatJSON))
	v.SetDefault(KeyFetchTimeout, 10*time.Second)
}

// LoadConfig reads the config file named by the "config" key, if any, and enables
// AUTOMATA_* environment overrides.
func LoadConfig(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString(KeyConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	return nil
}

// FromViper builds and validates a Config
func FromViper(v *viper.Viper) (*Config, error) {
	format, err := automaton.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logging: logging.LoggerConfig{
			Level:     logging.LogLevel(strings.ToLower(v.GetString(KeyLogLevel))),
			Format:    logging.LogFormat(strings.ToLower(v.GetString(KeyLogFormat))),
			OutputDir: v.GetString(KeyLogDir),
			MaxFiles:  v.GetInt(KeyLogMaxFiles),
			Timestamp: true,
			Colors:    v.GetBool(KeyLogColors),
		},
		MetricsDir:   v.GetString(KeyMetricsDir),
		Format:       format,
		FetchTimeout: v.GetDuration(KeyFetchTimeout),
		Automaton:    v.GetString(KeyAutomaton),
		Output:       v.GetString(KeyOutput),
		Examples:     v.GetString(KeyExamples),
		Report:       v.GetString(KeyReport),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the Config for invalid values
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Wrap(err, "invalid logging configuration")
	}
	if c.FetchTimeout <= 0 {
		return errors.Newf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}
