/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Online automaton inference from labeled example words. The Learner grows a
single deterministic automaton greedily: existing transitions are reused, missing ones
get a freshly minted state, and each word's label is applied to the state it ends in.
The result is consistent with every label seen but is not minimal.
*/

package inference

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/core"
)

// Reserved symbols in learner input. None of them belongs to the learned alphabet.
const (
	AcceptMarker = '+'
	RejectMarker = '-'
	Boundary     = '\n'
)

var reserved = string([]rune{AcceptMarker, RejectMarker, Boundary})

// InitialState is the name of the state every learner starts from
const InitialState = "q1"

// Label is the verdict attached to a training word
type Label int

const (
	LabelNone Label = iota
	LabelAccept
	LabelReject
)

func (l Label) String() string {
	switch l {
	case LabelAccept:
		return "accept"
	case LabelReject:
		return "reject"
	default:
		return "none"
	}
}

// Example is a labeled training word
type Example struct {
	Word  string
	Label Label
}

// Learner builds an automaton consistent with a stream of labeled words
type Learner struct {
	automaton *automaton.Automaton
	reporter  core.Reporter

	nextName int                            // suffix of the next fresh state name
	rejected map[automaton.StateID]struct{} // states some rejected word ended in

	label  Label // label pending for the word being scanned
	length int   // symbols in the word being scanned
	minted bool  // whether the word being scanned created a state
	words  int   // words finished so far
}

// NewLearner creates a learner holding only the initial state
func NewLearner() *Learner {
	return &Learner{
		automaton: automaton.New(InitialState),
		reporter:  core.NopReporter{},
		nextName:  2,
		rejected:  make(map[automaton.StateID]struct{}),
	}
}

// SetReporter installs a reporter notified of minted states and learned words
func (l *Learner) SetReporter(reporter core.Reporter) {
	if reporter == nil {
		reporter = core.NopReporter{}
	}
	l.reporter = reporter
}

// Update consumes one alphabet symbol, reusing the existing transition from the
// cursor or minting a fresh state when there is none.
func (l *Learner) Update(symbol rune) error {
	a := l.automaton
	if _, ok := a.Target(symbol, a.Current()); !ok {
		if err := l.mint(symbol); err != nil {
			return err
		}
	}
	l.length++
	_, err := a.Step(symbol)
	return err
}

// mint creates the next fresh state and the transition leading to it
func (l *Learner) mint(symbol rune) error {
	a := l.automaton
	from := a.Current()
	name := fmt.Sprintf("q%d", l.nextName)
	l.nextName++

	fresh, err := a.AddState(name)
	if err != nil {
		return errors.Wrap(err, "failed to mint state")
	}
	if err := a.AddTransition(symbol, from, fresh); err != nil {
		return errors.Wrap(err, "failed to add transition")
	}

	l.minted = true
	l.reporter.OnStateMinted(core.MintEvent{State: name, From: a.Name(from), Symbol: symbol})
	return nil
}

// SetLabel records the label of the word being scanned. The last call wins.
func (l *Learner) SetLabel(label Label) {
	l.label = label
}

// FinishWord applies the pending label to the cursor state and resets for the next word.
// A state reached by an accepted word can never be reached by a rejected one and the
// other way round; either conflict fails with ErrInconsistentLabel.
func (l *Learner) FinishWord() error {
	a := l.automaton
	index := l.words + 1
	state := a.Current()
	name := a.Name(state)

	switch l.label {
	case LabelNone:
		err := errors.Wrapf(automaton.ErrMissingLabel, "word %d has no %q or %q marker", index, AcceptMarker, RejectMarker)
		return errors.WithHint(err, "every word must carry exactly one accept or reject marker before its newline")

	case LabelReject:
		if a.Accepts(state) {
			err := errors.Wrapf(automaton.ErrInconsistentLabel, "word %d is labeled reject but ends in accepting state %s", index, name)
			return errors.WithDetail(err, "an earlier word reaching the same state was labeled accept")
		}
		l.rejected[state] = struct{}{}

	case LabelAccept:
		if _, ok := l.rejected[state]; ok {
			err := errors.Wrapf(automaton.ErrInconsistentLabel, "word %d is labeled accept but ends in rejected state %s", index, name)
			return errors.WithDetail(err, "an earlier word reaching the same state was labeled reject")
		}
		if err := a.SetAccepting(state); err != nil {
			return err
		}
	}

	l.reporter.OnWordLearned(core.WordEvent{
		Index:    index,
		Accepted: l.label == LabelAccept,
		State:    name,
		Length:   l.length,
		NewState: l.minted,
	})

	l.words++
	l.label = LabelNone
	l.length = 0
	l.minted = false
	a.Reset()
	return nil
}

// Feed classifies one raw input symbol: markers set the pending label, the boundary
// finishes the word and everything else drives Update.
func (l *Learner) Feed(symbol rune) error {
	switch symbol {
	case AcceptMarker:
		l.SetLabel(LabelAccept)
		return nil
	case RejectMarker:
		l.SetLabel(LabelReject)
		return nil
	case Boundary:
		return l.FinishWord()
	default:
		return l.Update(symbol)
	}
}

// Learn feeds one labeled example as a complete word
func (l *Learner) Learn(example Example) error {
	if i := strings.IndexAny(example.Word, reserved); i >= 0 {
		return errors.WithHint(
			errors.Wrapf(automaton.ErrMalformedDescription, "word %q contains reserved symbol %q", example.Word, example.Word[i]),
			"markers and newlines cannot be part of a learned word",
		)
	}
	for _, symbol := range example.Word {
		if err := l.Update(symbol); err != nil {
			return err
		}
	}
	l.SetLabel(example.Label)
	return l.FinishWord()
}

// Automaton returns the automaton built so far
func (l *Learner) Automaton() *automaton.Automaton {
	return l.automaton
}

// Describe serializes the automaton built so far
func (l *Learner) Describe() *automaton.Description {
	return l.automaton.Describe()
}

// WordsLearned returns the number of finished words
func (l *Learner) WordsLearned() int {
	return l.words
}

// Infer learns every example in order and returns the resulting description
func Infer(examples []Example) (*automaton.Description, error) {
	l := NewLearner()
	for _, example := range examples {
		if err := l.Learn(example); err != nil {
			return nil, err
		}
	}
	return l.Describe(), nil
}
