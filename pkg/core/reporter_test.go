/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter_test.go
Description: Tests for sessions, run statistics and the reporter implementations.
*/

package core_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSession tests session creation
func TestNewSession(t *testing.T) {
	session := core.NewSession(core.ModeLearn)
	require.NotNil(t, session)

	_, err := uuid.Parse(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, core.ModeLearn, session.Mode)
	assert.False(t, session.StartTime.IsZero())

	assert.NotEqual(t, session.ID, core.NewSession(core.ModeLearn).ID)
}

// TestRunStatsFinish tests finishing statistics with and without an error
func TestRunStatsFinish(t *testing.T) {
	session := core.NewSession(core.ModeRecognize)
	stats := core.NewRunStats(session)
	assert.Equal(t, session.ID, stats.SessionID)
	assert.Equal(t, core.ModeRecognize, stats.Mode)

	stats.Finish(nil)
	assert.Empty(t, stats.Error)
	assert.GreaterOrEqual(t, int64(stats.Duration), int64(0))

	stats.Finish(errors.New("boom"))
	assert.Equal(t, "boom", stats.Error)
}

// TestStatsReporter tests event accumulation
func TestStatsReporter(t *testing.T) {
	stats := core.NewRunStats(core.NewSession(core.ModeLearn))
	reporter := core.NewStatsReporter(stats)

	reporter.OnStateMinted(core.MintEvent{State: "q2", From: "q1", Symbol: 'a'})
	reporter.OnWordLearned(core.WordEvent{Index: 1, Accepted: true, State: "q2", Length: 1})
	reporter.OnVerdict(core.VerdictEvent{Index: 2, Accepted: false, State: "q1", Length: 3})

	assert.Equal(t, 2, stats.Words)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 4, stats.Symbols)
}

// TestLoggerReporter tests that events are logged at debug level with the session
func TestLoggerReporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	session := core.NewSession(core.ModeLearn)

	reporter := core.NewLoggerReporter(logger, session)
	reporter.OnStateMinted(core.MintEvent{State: "q2", From: "q1", Symbol: 'a'})
	reporter.OnWordLearned(core.WordEvent{Index: 1, Accepted: true, State: "q2", Length: 1})
	reporter.OnVerdict(core.VerdictEvent{Index: 1, Accepted: true, State: "q2", Length: 1})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "State minted", entries[0].Message)
	assert.Equal(t, "a", entries[0].Data["symbol"])
	assert.Equal(t, "Word learned", entries[1].Message)
	assert.Equal(t, "Verdict emitted", entries[2].Message)
	for _, entry := range entries {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, session.ID, entry.Data["session"])
	}
}

// TestMultiReporter tests fan-out to several reporters
func TestMultiReporter(t *testing.T) {
	first := core.NewRunStats(core.NewSession(core.ModeRecognize))
	second := core.NewRunStats(core.NewSession(core.ModeRecognize))

	multi := core.MultiReporter{core.NewStatsReporter(first), core.NopReporter{}, core.NewStatsReporter(second)}
	multi.OnVerdict(core.VerdictEvent{Index: 1, Accepted: true, Length: 2})
	multi.OnWordLearned(core.WordEvent{Index: 2, Accepted: false, Length: 1})
	multi.OnStateMinted(core.MintEvent{State: "q2"})

	assert.Equal(t, 2, first.Words)
	assert.Equal(t, 2, second.Words)
	assert.Equal(t, 3, second.Symbols)
}
