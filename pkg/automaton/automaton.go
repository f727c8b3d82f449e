/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: automaton.go
Description: Deterministic finite automaton model shared by the recognizer and the
learner. States live in an arena indexed by StateID, transitions are keyed by
(symbol, StateID) so every key holds exactly one target, and a live cursor tracks the
state reached by the word currently being processed.
*/

package automaton

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// StateID is the index of a state in the automaton's arena
type StateID int

// NoState is returned by lookups that find nothing
const NoState StateID = -1

// transitionKey identifies one slot of the transition function
type transitionKey struct {
	symbol rune
	from   StateID
}

// Transition is one resolved edge of the automaton
type Transition struct {
	Symbol rune
	From   StateID
	To     StateID
}

// Automaton is a DFA with a movable cursor.
// The zero value is not usable; create one with New.
type Automaton struct {
	names       []string           // StateID -> name
	index       map[string]StateID // name -> StateID
	accepting   []bool             // StateID -> accepting flag
	transitions map[transitionKey]StateID
	initial     StateID
	current     StateID
}

// New creates an automaton holding a single initial state with the given name
func New(initial string) *Automaton {
	a := &Automaton{
		index:       make(map[string]StateID),
		transitions: make(map[transitionKey]StateID),
	}
	a.initial, _ = a.AddState(initial)
	a.current = a.initial
	return a
}

// AddState registers a new state and returns its ID.
// Names are unique within one automaton.
func (a *Automaton) AddState(name string) (StateID, error) {
	if id, exists := a.index[name]; exists {
		return id, errors.Newf("state %q already exists", name)
	}
	id := StateID(len(a.names))
	a.names = append(a.names, name)
	a.accepting = append(a.accepting, false)
	a.index[name] = id
	return id, nil
}

// Lookup returns the ID of the named state
func (a *Automaton) Lookup(name string) (StateID, bool) {
	id, ok := a.index[name]
	return id, ok
}

// Name returns the name of a state
func (a *Automaton) Name(id StateID) string {
	if !a.valid(id) {
		return ""
	}
	return a.names[id]
}

// AddTransition defines (symbol, from) -> to.
// A key can be defined once; redefining it is an error even with the same target.
func (a *Automaton) AddTransition(symbol rune, from, to StateID) error {
	if !a.valid(from) || !a.valid(to) {
		return errors.Newf("transition (%q, %d) -> %d references an unknown state", symbol, from, to)
	}
	key := transitionKey{symbol: symbol, from: from}
	if existing, exists := a.transitions[key]; exists {
		return errors.Newf("transition (%q, %s) already leads to %s", symbol, a.names[from], a.names[existing])
	}
	a.transitions[key] = to
	return nil
}

// Target returns the state reached from `from` on symbol
func (a *Automaton) Target(symbol rune, from StateID) (StateID, bool) {
	to, ok := a.transitions[transitionKey{symbol: symbol, from: from}]
	if !ok {
		return NoState, false
	}
	return to, true
}

// SetAccepting marks a state as accepting. Marking twice is a no-op.
func (a *Automaton) SetAccepting(id StateID) error {
	if !a.valid(id) {
		return errors.Newf("unknown state %d", id)
	}
	a.accepting[id] = true
	return nil
}

// Accepts reports whether a state is accepting
func (a *Automaton) Accepts(id StateID) bool {
	return a.valid(id) && a.accepting[id]
}

// Step follows the transition for symbol from the current state
func (a *Automaton) Step(symbol rune) (StateID, error) {
	to, ok := a.Target(symbol, a.current)
	if !ok {
		return NoState, undefinedTransition(symbol, a.names[a.current])
	}
	a.current = to
	return to, nil
}

// IsAccepting reports whether the cursor sits on an accepting state
func (a *Automaton) IsAccepting() bool {
	return a.accepting[a.current]
}

// Reset moves the cursor back to the initial state
func (a *Automaton) Reset() {
	a.current = a.initial
}

// Initial returns the initial state
func (a *Automaton) Initial() StateID { return a.initial }

// Current returns the cursor position
func (a *Automaton) Current() StateID { return a.current }

// NumStates returns the number of states
func (a *Automaton) NumStates() int { return len(a.names) }

// NumTransitions returns the number of defined transitions
func (a *Automaton) NumTransitions() int { return len(a.transitions) }

// Alphabet returns the symbols used by at least one transition, sorted
func (a *Automaton) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for key := range a.transitions {
		seen[key.symbol] = struct{}{}
	}
	alphabet := make([]rune, 0, len(seen))
	for symbol := range seen {
		alphabet = append(alphabet, symbol)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet
}

// Transitions returns every transition ordered by source then symbol
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.transitions))
	for key, to := range a.transitions {
		out = append(out, Transition{Symbol: key.symbol, From: key.from, To: to})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// AcceptsWord runs a whole word from the initial state without moving the cursor.
// Returns ErrUndefinedTransition when the word leaves the defined transitions.
func (a *Automaton) AcceptsWord(word string) (bool, error) {
	state := a.initial
	for _, symbol := range word {
		to, ok := a.Target(symbol, state)
		if !ok {
			return false, undefinedTransition(symbol, a.names[state])
		}
		state = to
	}
	return a.accepting[state], nil
}

func (a *Automaton) valid(id StateID) bool {
	return id >= 0 && int(id) < len(a.names)
}
