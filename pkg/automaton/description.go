/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: description.go
Description: Serialized automaton description shared by the learner (producer) and the
recognizer (consumer). Supports JSON and YAML renditions of the same record, with
validation on load so a malformed description fails before any word is processed.
*/

package automaton

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format represents a description encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Description is the structured record exchanged between components.
// States and Accepting are sorted ascending by name; Alphabet and Transitions
// carry no meaningful order.
type Description struct {
	Alphabet    []string                `json:"alphabet" yaml:"alphabet"`
	States      []string                `json:"states" yaml:"states"`
	Initial     string                  `json:"initial" yaml:"initial"`
	Accepting   []string                `json:"accepting" yaml:"accepting"`
	Transitions []TransitionDescription `json:"transitions" yaml:"transitions"`
}

// TransitionDescription is one {letter, from, to} triple
type TransitionDescription struct {
	Letter string `json:"letter" yaml:"letter"`
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
}

// ParseFormat maps a user supplied format name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf("unsupported description format: %s", name)
	}
}

// FormatFromPath picks the encoding from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Describe serializes the automaton into a Description
func (a *Automaton) Describe() *Description {
	d := &Description{
		Alphabet:    make([]string, 0),
		States:      make([]string, 0, len(a.names)),
		Initial:     a.names[a.initial],
		Accepting:   make([]string, 0),
		Transitions: make([]TransitionDescription, 0, len(a.transitions)),
	}

	for _, symbol := range a.Alphabet() {
		d.Alphabet = append(d.Alphabet, string(symbol))
	}

	for id, name := range a.names {
		d.States = append(d.States, name)
		if a.accepting[id] {
			d.Accepting = append(d.Accepting, name)
		}
	}
	sort.Strings(d.States)
	sort.Strings(d.Accepting)

	for _, t := range a.Transitions() {
		d.Transitions = append(d.Transitions, TransitionDescription{
			Letter: string(t.Symbol),
			From:   a.names[t.From],
			To:     a.names[t.To],
		})
	}

	return d
}

// Build validates a description and constructs the automaton it describes.
// All failures wrap ErrMalformedDescription.
func (d *Description) Build() (*Automaton, error) {
	if d.Initial == "" {
		return nil, malformed("missing required field %q", "initial")
	}
	if d.States == nil {
		return nil, malformed("missing required field %q", "states")
	}
	if d.Accepting == nil {
		return nil, malformed("missing required field %q", "accepting")
	}
	if d.Transitions == nil {
		return nil, malformed("missing required field %q", "transitions")
	}

	a := &Automaton{
		index:       make(map[string]StateID, len(d.States)),
		transitions: make(map[transitionKey]StateID, len(d.Transitions)),
	}
	for _, name := range d.States {
		if _, err := a.AddState(name); err != nil {
			return nil, malformed("duplicate state %q", name)
		}
	}

	initial, ok := a.Lookup(d.Initial)
	if !ok {
		return nil, malformed("initial state %q is not listed in states", d.Initial)
	}
	a.initial = initial
	a.current = initial

	for _, name := range d.Accepting {
		id, ok := a.Lookup(name)
		if !ok {
			return nil, malformed("accepting state %q is not listed in states", name)
		}
		a.accepting[id] = true
	}

	for i, t := range d.Transitions {
		if utf8.RuneCountInString(t.Letter) != 1 {
			return nil, malformed("transition %d: letter %q is not a single character", i, t.Letter)
		}
		symbol, _ := utf8.DecodeRuneInString(t.Letter)
		from, ok := a.Lookup(t.From)
		if !ok {
			return nil, malformed("transition %d: source state %q is not listed in states", i, t.From)
		}
		to, ok := a.Lookup(t.To)
		if !ok {
			return nil, malformed("transition %d: target state %q is not listed in states", i, t.To)
		}
		if err := a.AddTransition(symbol, from, to); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "transition %d", i), ErrMalformedDescription)
		}
	}

	return a, nil
}

// DecodeDescription reads a description in the given format
func DecodeDescription(r io.Reader, format Format) (*Description, error) {
	var d Description
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to decode YAML description"), ErrMalformedDescription)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to decode JSON description"), ErrMalformedDescription)
		}
	default:
		return nil, errors.Newf("unsupported description format: %s", format)
	}
	return &d, nil
}

// EncodeDescription writes a description in the given format
func EncodeDescription(w io.Writer, d *Description, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return errors.Wrap(err, "failed to encode YAML description")
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "    ")
		if err != nil {
			return errors.Wrap(err, "failed to encode JSON description")
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	default:
		return errors.Newf("unsupported description format: %s", format)
	}
}

// Load decodes and builds an automaton in one call
func Load(r io.Reader, format Format) (*Automaton, error) {
	d, err := DecodeDescription(r, format)
	if err != nil {
		return nil, err
	}
	return d.Build()
}
