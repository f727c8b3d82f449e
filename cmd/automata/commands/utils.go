/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the automata commands. Provides configuration
loading, logging setup, run session bookkeeping and the input/output helpers used
across all command implementations.
*/

package commands

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/kleascm/akaylee-automata/pkg/logging"
	"github.com/kleascm/akaylee-automata/pkg/source"
	"github.com/kleascm/akaylee-automata/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runContext carries everything one command run needs
type runContext struct {
	cmd      *cobra.Command
	cfg      *config.Config
	logger   *logging.Logger
	session  *core.Session
	stats    *core.RunStats
	reporter core.Reporter
}

// newRunContext loads configuration and sets up logging and reporting for a run
func newRunContext(cmd *cobra.Command, v *viper.Viper, mode core.Mode) (*runContext, error) {
	if err := config.LoadConfig(v); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	logger, err := logging.NewLoggerWithOutput(&cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, errors.Wrap(err, "failed to setup logging")
	}

	session := core.NewSession(mode)
	stats := core.NewRunStats(session)
	reporter := core.MultiReporter{
		core.NewLoggerReporter(logger.GetLogger(), session),
		core.NewStatsReporter(stats),
	}

	logger.Debug("Run started", map[string]interface{}{
		"session": session.ID,
		"mode":    mode,
	})

	return &runContext{
		cmd:      cmd,
		cfg:      cfg,
		logger:   logger,
		session:  session,
		stats:    stats,
		reporter: reporter,
	}, nil
}

// finish records the outcome of the run, writes metrics and closes the logger.
// It returns err unchanged unless err is nil and closing fails.
func (rc *runContext) finish(err error) error {
	rc.stats.Finish(err)
	rc.logger.LogRunSummary(rc.stats)

	if rc.cfg.MetricsDir != "" {
		path, writeErr := utils.WriteRunStats(rc.cfg.MetricsDir, rc.stats)
		if writeErr != nil {
			rc.logger.Warning("Failed to write run metrics", map[string]interface{}{"error": writeErr})
		} else {
			rc.logger.Debug("Run metrics written", map[string]interface{}{"path": path})
		}
	}

	if closeErr := rc.logger.Close(); closeErr != nil && err == nil {
		return closeErr
	}
	return err
}

// recordAutomaton copies the automaton size into the run statistics
func (rc *runContext) recordAutomaton(a *automaton.Automaton) {
	rc.stats.States = a.NumStates()
	rc.stats.Transitions = a.NumTransitions()
}

// openInput opens a location, mapping "" and "-" to the command's standard input
func (rc *runContext) openInput(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" || location == source.Stdin {
		return io.NopCloser(rc.cmd.InOrStdin()), nil
	}
	return source.Open(ctx, location, rc.cfg.FetchTimeout)
}

// loadAutomaton opens, decodes and validates a description
func (rc *runContext) loadAutomaton(ctx context.Context, location string) (*automaton.Automaton, error) {
	in, err := source.Open(ctx, location, rc.cfg.FetchTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open automaton description")
	}
	defer in.Close()

	a, err := automaton.Load(in, inputFormat(rc.cmd, rc.cfg, location))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load automaton from %s", location)
	}

	rc.logger.LogAutomatonLoaded(location, a.NumStates(), a.NumTransitions())
	return a, nil
}

// inputFormat picks the description format of location. An explicit --format wins
// over the file extension.
func inputFormat(cmd *cobra.Command, cfg *config.Config, location string) automaton.Format {
	if cmd.Flags().Changed("format") {
		return cfg.Format
	}
	return automaton.FormatFromPath(location)
}

// writeOutput writes content to path, or to the command's standard output when
// path is empty
func (rc *runContext) writeOutput(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(rc.cmd.OutOrStdout())
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}

	rc.logger.Info("Output written", map[string]interface{}{"path": path})
	return nil
}
