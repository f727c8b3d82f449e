/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utilities.go
Description: Self-check command for the automata CLI. Validates configuration, the log
and metrics directories and optionally an automaton description before real runs.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/kleascm/akaylee-automata/pkg/logging"
	"github.com/kleascm/akaylee-automata/pkg/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PerformSelfCheck performs system validation
func PerformSelfCheck(cmd *cobra.Command, v *viper.Viper) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Akaylee Automata - System Self-Check")
	fmt.Fprintln(out, "======================================")
	fmt.Fprintln(out)

	var cfg *config.Config
	checks := []struct {
		name     string
		function func() error
	}{
		{"Configuration Validation", func() error {
			if err := config.LoadConfig(v); err != nil {
				return err
			}
			var err error
			cfg, err = config.FromViper(v)
			return err
		}},
		{"Log Directory", func() error {
			if cfg == nil || cfg.Logging.OutputDir == "" {
				return nil
			}
			if err := checkWritable(cfg.Logging.OutputDir); err != nil {
				return err
			}
			_, err := logging.NewLogManager(cfg.Logging.OutputDir, cfg.Logging.MaxFiles).GetLogStats()
			return err
		}},
		{"Metrics Directory", func() error {
			if cfg == nil || cfg.MetricsDir == "" {
				return nil
			}
			return checkWritable(cfg.MetricsDir)
		}},
		{"Automaton Description", func() error {
			if cfg == nil || cfg.Automaton == "" {
				return nil
			}
			return checkDescription(cmd.Context(), cfg, inputFormat(cmd, cfg, cfg.Automaton))
		}},
	}

	passed := 0
	total := len(checks)

	for _, check := range checks {
		fmt.Fprintf(out, "🔍 %s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Fprintf(out, "❌ FAILED: %v\n", err)
		} else {
			fmt.Fprintln(out, "✅ PASSED")
			passed++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "📊 Results: %d/%d checks passed\n", passed, total)

	if passed == total {
		fmt.Fprintln(out, "✨ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. Please address the issues before running.")
	return errors.Newf("%d/%d checks failed", total-passed, total)
}

// checkWritable creates dir if needed and writes a temporary file into it
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create %s", dir)
	}
	marker := filepath.Join(dir, ".automata_check")
	if err := os.WriteFile(marker, []byte("check"), 0644); err != nil {
		return errors.Wrapf(err, "%s is not writable", dir)
	}
	return os.Remove(marker)
}

// checkDescription loads and validates the configured automaton description
func checkDescription(ctx context.Context, cfg *config.Config, format automaton.Format) error {
	in, err := source.Open(ctx, cfg.Automaton, cfg.FetchTimeout)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = automaton.Load(in, format)
	return err
}
