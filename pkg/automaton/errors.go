/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the automaton engine. Every fatal condition raised by
the model, the recognizer and the learner wraps one of these sentinels so callers can
tell them apart with errors.Is.
*/

package automaton

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrUndefinedTransition is returned by Step when (symbol, current) has no target.
	ErrUndefinedTransition = errors.New("undefined transition")
	// ErrMissingLabel is returned when a word ends before any accept/reject marker.
	ErrMissingLabel = errors.New("missing label")
	// ErrInconsistentLabel is returned when a rejected word ends in an accepting state.
	ErrInconsistentLabel = errors.New("inconsistent label")
	// ErrMalformedDescription is returned while loading a bad automaton description.
	ErrMalformedDescription = errors.New("malformed automaton description")
	// ErrMalformedWordCount is returned when the learner's word count line is not a
	// non-negative integer.
	ErrMalformedWordCount = errors.New("malformed word count")
	// ErrTruncatedInput is returned when the learner's stream ends before N words.
	ErrTruncatedInput = errors.New("truncated input")
)

// undefinedTransition builds the error returned by Step.
func undefinedTransition(symbol rune, from string) error {
	err := errors.Wrapf(ErrUndefinedTransition, "no transition for (%q, %s)", symbol, from)
	return errors.WithHint(err, "the automaton must define a transition for every symbol the input uses")
}

// malformed builds a load-time validation error.
func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedDescription, format, args...)
}
