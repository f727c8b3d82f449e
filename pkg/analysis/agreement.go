/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: agreement.go
Description: Agreement analysis between labeled training words and an automaton. Every
example is replayed from the initial state and compared with its label; disagreements
and words the automaton cannot follow are collected into a report.
*/

package analysis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/inference"
	"github.com/sirupsen/logrus"
)

// DifferenceType represents the kind of disagreement found
type DifferenceType string

const (
	// DiffVerdict means the automaton decided the opposite of the label
	DiffVerdict DifferenceType = "verdict"
	// DiffUndefined means the word left the defined transitions
	DiffUndefined DifferenceType = "undefined_transition"
)

// Difference is one training word the automaton disagrees with
type Difference struct {
	Type     DifferenceType `json:"type"`
	Index    int            `json:"index"` // 1-based position among the examples
	Word     string         `json:"word"`
	Expected string         `json:"expected"`
	Actual   string         `json:"actual"`
	Detail   string         `json:"detail,omitempty"`
}

// AgreementReport summarises an agreement check
type AgreementReport struct {
	Timestamp   time.Time    `json:"timestamp"`
	Examples    int          `json:"examples"`
	Agreed      int          `json:"agreed"`
	Differences []Difference `json:"differences"`
}

// Consistent reports whether every example agreed
func (r *AgreementReport) Consistent() bool {
	return len(r.Differences) == 0
}

// AgreementAnalyzer replays examples against an automaton
type AgreementAnalyzer struct {
	logger *logrus.Logger
}

// NewAgreementAnalyzer creates an analyzer; a nil logger falls back to the standard one
func NewAgreementAnalyzer(logger *logrus.Logger) *AgreementAnalyzer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AgreementAnalyzer{logger: logger}
}

// Analyze compares every example's label with the automaton's verdict
func (aa *AgreementAnalyzer) Analyze(a *automaton.Automaton, examples []inference.Example) *AgreementReport {
	report := &AgreementReport{
		Timestamp:   time.Now(),
		Examples:    len(examples),
		Differences: make([]Difference, 0),
	}

	for i, example := range examples {
		expected := example.Label == inference.LabelAccept
		accepted, err := a.AcceptsWord(example.Word)
		if err != nil {
			if !errors.Is(err, automaton.ErrUndefinedTransition) {
				aa.logger.WithError(err).Warn("Unexpected error while replaying example")
			}
			report.Differences = append(report.Differences, Difference{
				Type:     DiffUndefined,
				Index:    i + 1,
				Word:     example.Word,
				Expected: verdictName(expected),
				Actual:   "undefined",
				Detail:   err.Error(),
			})
			continue
		}
		if accepted != expected {
			report.Differences = append(report.Differences, Difference{
				Type:     DiffVerdict,
				Index:    i + 1,
				Word:     example.Word,
				Expected: verdictName(expected),
				Actual:   verdictName(accepted),
			})
			continue
		}
		report.Agreed++
	}

	aa.logger.WithFields(logrus.Fields{
		"examples":    report.Examples,
		"agreed":      report.Agreed,
		"differences": len(report.Differences),
	}).Info("Agreement analysis completed")

	return report
}

// SaveReport writes the report as indented JSON
func (aa *AgreementAnalyzer) SaveReport(report *AgreementReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal agreement report")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write agreement report")
	}
	return nil
}

func verdictName(accepted bool) string {
	if accepted {
		return "yes"
	}
	return "no"
}
