/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for automata run telemetry.
Components notify reporters as states are minted, words are learned and verdicts are
emitted; reporters log the events or fold them into run statistics.
*/

package core

import (
	"github.com/sirupsen/logrus"
)

// Reporter defines the interface for telemetry and reporting hooks.
type Reporter interface {
	// OnStateMinted is called when the learner creates a fresh state.
	OnStateMinted(event MintEvent)
	// OnWordLearned is called after the learner applies a word's label.
	OnWordLearned(event WordEvent)
	// OnVerdict is called after the recognizer classifies a word.
	OnVerdict(event VerdictEvent)
}

// NopReporter ignores every event
type NopReporter struct{}

func (NopReporter) OnStateMinted(MintEvent) {}
func (NopReporter) OnWordLearned(WordEvent) {}
func (NopReporter) OnVerdict(VerdictEvent) {}

// LoggerReporter logs events at debug level.
type LoggerReporter struct {
	logger *logrus.Entry
}

// NewLoggerReporter creates a new LoggerReporter tagged with the session ID.
func NewLoggerReporter(logger *logrus.Logger, session *Session) *LoggerReporter {
	return &LoggerReporter{
		logger: logger.WithFields(logrus.Fields{"session": session.ID, "mode": session.Mode}),
	}
}

// OnStateMinted logs a new state.
func (r *LoggerReporter) OnStateMinted(event MintEvent) {
	r.logger.WithFields(logrus.Fields{
		"state":  event.State,
		"from":   event.From,
		"symbol": string(event.Symbol),
	}).Debug("State minted")
}

// OnWordLearned logs a learned word.
func (r *LoggerReporter) OnWordLearned(event WordEvent) {
	r.logger.WithFields(logrus.Fields{
		"word":     event.Index,
		"accepted": event.Accepted,
		"state":    event.State,
		"length":   event.Length,
	}).Debug("Word learned")
}

// OnVerdict logs a verdict.
func (r *LoggerReporter) OnVerdict(event VerdictEvent) {
	r.logger.WithFields(logrus.Fields{
		"word":     event.Index,
		"accepted": event.Accepted,
		"state":    event.State,
		"length":   event.Length,
	}).Debug("Verdict emitted")
}

// StatsReporter folds events into RunStats.
type StatsReporter struct {
	Stats *RunStats
}

// NewStatsReporter creates a reporter accumulating into stats.
func NewStatsReporter(stats *RunStats) *StatsReporter {
	return &StatsReporter{Stats: stats}
}

func (r *StatsReporter) OnStateMinted(MintEvent) {}

func (r *StatsReporter) OnWordLearned(event WordEvent) {
	r.count(event.Accepted, event.Length)
}

func (r *StatsReporter) OnVerdict(event VerdictEvent) {
	r.count(event.Accepted, event.Length)
}

func (r *StatsReporter) count(accepted bool, length int) {
	r.Stats.Words++
	r.Stats.Symbols += length
	if accepted {
		r.Stats.Accepted++
	} else {
		r.Stats.Rejected++
	}
}

// MultiReporter fans events out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) OnStateMinted(event MintEvent) {
	for _, r := range m {
		r.OnStateMinted(event)
	}
}

func (m MultiReporter) OnWordLearned(event WordEvent) {
	for _, r := range m {
		r.OnWordLearned(event)
	}
}

func (m MultiReporter) OnVerdict(event VerdictEvent) {
	for _, r := range m {
		r.OnVerdict(event)
	}
}
