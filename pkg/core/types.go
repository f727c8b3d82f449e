/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core run types for the automata tools. Defines the session that tags one
recognizer or learner run, the events emitted while words are processed, and the
statistics summarised at the end of a run.
*/

package core

import (
	"time"

	"github.com/google/uuid"
)

// Mode identifies which component produced a run
type Mode string

const (
	ModeRecognize Mode = "recognize"
	ModeLearn     Mode = "learn"
	ModeVerify    Mode = "verify"
	ModeExport    Mode = "export"
)

// Session identifies one run of a component
// Its ID tags every log line and metrics file written during the run
type Session struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	StartTime time.Time `json:"start_time"`
}

// NewSession creates a session with a fresh random ID
func NewSession(mode Mode) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Mode:      mode,
		StartTime: time.Now(),
	}
}

// WordEvent describes a word the learner has finished
type WordEvent struct {
	Index    int    `json:"index"`     // 1-based position in the input
	Accepted bool   `json:"accepted"`  // Label applied to the word
	State    string `json:"state"`     // State the word ended in
	Length   int    `json:"length"`    // Number of alphabet symbols in the word
	NewState bool   `json:"new_state"` // Whether the word minted at least one state
}

// MintEvent describes a state created by the learner
type MintEvent struct {
	State  string `json:"state"`  // Name of the new state
	From   string `json:"from"`   // Source of the transition that created it
	Symbol rune   `json:"symbol"` // Symbol of that transition
}

// VerdictEvent describes a word classified by the recognizer
type VerdictEvent struct {
	Index    int    `json:"index"`    // 1-based position in the input
	Accepted bool   `json:"accepted"` // Verdict
	State    string `json:"state"`    // State the word ended in
	Length   int    `json:"length"`   // Number of symbols in the word
}

// RunStats summarises one run
type RunStats struct {
	SessionID   string        `json:"session_id"`
	Mode        Mode          `json:"mode"`
	Words       int           `json:"words"`       // Words completed
	Accepted    int           `json:"accepted"`    // Words accepted (verdict or label)
	Rejected    int           `json:"rejected"`    // Words rejected (verdict or label)
	Symbols     int           `json:"symbols"`     // Alphabet symbols consumed
	States      int           `json:"states"`      // States in the automaton at the end
	Transitions int           `json:"transitions"` // Transitions in the automaton at the end
	Mismatches  int           `json:"mismatches"`  // Verify mode: verdicts disagreeing with labels
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}

// NewRunStats creates empty statistics for a session
func NewRunStats(session *Session) *RunStats {
	return &RunStats{
		SessionID: session.ID,
		Mode:      session.Mode,
		StartTime: session.StartTime,
	}
}

// Finish records the run duration and the terminating error, if any
func (s *RunStats) Finish(err error) {
	s.Duration = time.Since(s.StartTime)
	if err != nil {
		s.Error = err.Error()
	}
}
