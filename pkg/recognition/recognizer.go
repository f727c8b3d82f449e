/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: recognizer.go
Description: Word-stream recognizer. Replays a symbol stream through a fixed automaton,
emitting one verdict per newline-terminated word and resetting the cursor at every
boundary. A symbol without a transition aborts the whole run.
*/

package recognition

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/core"
)

// Boundary ends a word in recognizer input
const Boundary = '\n'

// Verdict is the outcome for one word
type Verdict bool

const (
	Reject Verdict = false
	Accept Verdict = true
)

// String renders the verdict the way it is written to output
func (v Verdict) String() string {
	if v {
		return "yes"
	}
	return "no"
}

// Recognizer classifies words against a loaded automaton
type Recognizer struct {
	automaton *automaton.Automaton
	reporter  core.Reporter
	words     int // verdicts emitted so far
	length    int // symbols in the current word
}

// New creates a recognizer for the automaton, with its cursor at the initial state
func New(a *automaton.Automaton) *Recognizer {
	a.Reset()
	return &Recognizer{
		automaton: a,
		reporter:  core.NopReporter{},
	}
}

// SetReporter installs a reporter notified of every verdict
func (r *Recognizer) SetReporter(reporter core.Reporter) {
	if reporter == nil {
		reporter = core.NopReporter{}
	}
	r.reporter = reporter
}

// Feed consumes one symbol. At a boundary it returns the verdict for the finished
// word and done=true; otherwise it steps the automaton.
func (r *Recognizer) Feed(symbol rune) (verdict Verdict, done bool, err error) {
	a := r.automaton
	if symbol != Boundary {
		if _, err := a.Step(symbol); err != nil {
			return Reject, false, errors.Wrapf(err, "word %d", r.words+1)
		}
		r.length++
		return Reject, false, nil
	}

	verdict = Verdict(a.IsAccepting())
	r.words++
	r.reporter.OnVerdict(core.VerdictEvent{
		Index:    r.words,
		Accepted: bool(verdict),
		State:    a.Name(a.Current()),
		Length:   r.length,
	})
	r.length = 0
	a.Reset()
	return verdict, true, nil
}

// Run reads symbols from in until end of stream and writes one verdict line per
// completed word to out. A trailing word without a boundary gets no verdict.
// Verdicts written before a failure are flushed.
func (r *Recognizer) Run(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	defer func() {
		if flushErr := writer.Flush(); flushErr != nil && err == nil {
			err = errors.Wrap(flushErr, "failed to write verdicts")
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		symbol, size, readErr := reader.ReadRune()
		if errors.Is(readErr, io.EOF) {
			r.discardPartial()
			return nil
		}
		if readErr != nil {
			return errors.Wrap(readErr, "failed to read symbol")
		}
		if symbol == utf8.RuneError && size == 1 {
			return errors.Newf("word %d is not valid UTF-8", r.words+1)
		}

		verdict, done, err := r.Feed(symbol)
		if err != nil {
			return err
		}
		if done {
			if _, err := writer.WriteString(verdict.String() + "\n"); err != nil {
				return errors.Wrap(err, "failed to write verdict")
			}
		}
	}
}

// discardPartial drops a word cut off by the end of the stream
func (r *Recognizer) discardPartial() {
	r.length = 0
	r.automaton.Reset()
}

// Words returns the number of verdicts emitted
func (r *Recognizer) Words() int {
	return r.words
}

// Classify runs each word through the automaton independently
func Classify(a *automaton.Automaton, words []string) ([]Verdict, error) {
	verdicts := make([]Verdict, 0, len(words))
	for i, word := range words {
		accepted, err := a.AcceptsWord(word)
		if err != nil {
			return verdicts, errors.Wrapf(err, "word %d", i+1)
		}
		verdicts = append(verdicts, Verdict(accepted))
	}
	return verdicts, nil
}
