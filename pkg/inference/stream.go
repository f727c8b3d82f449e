/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stream.go
Description: Stream drivers for learner input. The input starts with a word count line
followed by that many labeled words; symbols are consumed one at a time and fully
applied before the next is read.
*/

package inference

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
)

// Scanner reads the word count and the symbols of a labeled word stream
type Scanner struct {
	r *bufio.Reader
}

// NewScanner wraps r for symbol-at-a-time reading
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// ReadCount parses the leading word count line
func (s *Scanner) ReadCount() (int, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, errors.Wrap(err, "failed to read word count")
	}
	if err != nil && line == "" {
		return 0, errors.Wrap(automaton.ErrMalformedWordCount, "input is empty")
	}
	count, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || count < 0 {
		return 0, errors.Wrapf(automaton.ErrMalformedWordCount, "expected a non-negative integer, got %q", strings.TrimSpace(line))
	}
	return count, nil
}

// Next returns the next symbol, or io.EOF at the end of the stream. A byte that is
// not valid UTF-8 is an error.
func (s *Scanner) Next() (rune, error) {
	symbol, size, err := s.r.ReadRune()
	if err == nil && symbol == utf8.RuneError && size == 1 {
		return 0, errors.WithHint(errors.New("input is not valid UTF-8"), "training words must be UTF-8 encoded")
	}
	return symbol, err
}

// LearnStream reads a word count N and then exactly N labeled words from r,
// feeding every symbol to the learner. Input after the N-th boundary is not read.
func (l *Learner) LearnStream(ctx context.Context, r io.Reader) error {
	s := NewScanner(r)
	count, err := s.ReadCount()
	if err != nil {
		return err
	}
	return l.learnWords(ctx, s, count)
}

func (l *Learner) learnWords(ctx context.Context, s *Scanner, count int) error {
	start := l.words
	for l.words-start < count {
		if err := ctx.Err(); err != nil {
			return err
		}
		symbol, err := s.Next()
		if errors.Is(err, io.EOF) {
			return errors.Wrapf(automaton.ErrTruncatedInput, "stream ended after %d of %d words", l.words-start, count)
		}
		if err != nil {
			return errors.Wrap(err, "failed to read symbol")
		}
		if err := l.Feed(symbol); err != nil {
			return err
		}
	}
	return nil
}

// ReadExamples parses a labeled word stream (count line then words) into examples
// without learning them. Marker handling matches Feed: the last marker wins and a
// word without a marker fails with ErrMissingLabel.
func ReadExamples(ctx context.Context, r io.Reader) ([]Example, error) {
	s := NewScanner(r)
	count, err := s.ReadCount()
	if err != nil {
		return nil, err
	}

	// count is untrusted until the words actually arrive
	examples := make([]Example, 0, min(count, 1024))
	var word strings.Builder
	label := LabelNone
	for len(examples) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		symbol, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(automaton.ErrTruncatedInput, "stream ended after %d of %d words", len(examples), count)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read symbol")
		}

		switch symbol {
		case AcceptMarker:
			label = LabelAccept
		case RejectMarker:
			label = LabelReject
		case Boundary:
			if label == LabelNone {
				return nil, errors.Wrapf(automaton.ErrMissingLabel, "word %d has no %q or %q marker", len(examples)+1, AcceptMarker, RejectMarker)
			}
			examples = append(examples, Example{Word: word.String(), Label: label})
			word.Reset()
			label = LabelNone
		default:
			word.WriteRune(symbol)
		}
	}
	return examples, nil
}
