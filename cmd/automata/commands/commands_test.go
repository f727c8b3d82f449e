/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: commands_test.go
Description: End-to-end tests for the automata CLI. Drives the command tree with
in-memory standard streams and checks the learn, recognize, verify, export and check
commands together.
*/

package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/cmd/automata/commands"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainingSet = "2\nab+\na-\n"

// execute runs the CLI with args and stdin, returning stdout and stderr
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// learnToFile learns the training set into a description file
func learnToFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	_, _, err := execute(t, trainingSet, "learn", "--output", path)
	require.NoError(t, err)
	return path
}

// TestLearnToStdout tests that the learned description is written to standard output
func TestLearnToStdout(t *testing.T) {
	stdout, stderr, err := execute(t, trainingSet, "learn")
	require.NoError(t, err)

	var d automaton.Description
	require.NoError(t, json.Unmarshal([]byte(stdout), &d))
	assert.Equal(t, []string{"q1", "q2", "q3"}, d.States)
	assert.Equal(t, []string{"q3"}, d.Accepting)

	assert.Contains(t, stderr, "Run summary")
	assert.NotContains(t, stdout, "Run summary")
}

// TestLearnYAMLByExtension tests format detection from the output path
func TestLearnYAMLByExtension(t *testing.T) {
	path := learnToFile(t, "dfa.yaml")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "initial: q1")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = automaton.Load(f, automaton.FormatYAML)
	assert.NoError(t, err)
}

// TestLearnErrors tests learner failures surfacing as command errors
func TestLearnErrors(t *testing.T) {
	_, _, err := execute(t, "2\na+\na-\n", "learn")
	assert.True(t, errors.Is(err, automaton.ErrInconsistentLabel))

	_, _, err = execute(t, "many\n", "learn")
	assert.True(t, errors.Is(err, automaton.ErrMalformedWordCount))

	_, _, err = execute(t, "3\na+\n", "learn")
	assert.True(t, errors.Is(err, automaton.ErrTruncatedInput))
}

// TestRecognizeFirstLine tests the closed loop with the path on the first input line
func TestRecognizeFirstLine(t *testing.T) {
	path := learnToFile(t, "dfa.json")

	stdout, _, err := execute(t, path+"\nab\na\nab\n", "recognize")
	require.NoError(t, err)
	assert.Equal(t, "yes\nno\nyes\n", stdout)
}

// TestRecognizeFlag tests naming the description with --automaton
func TestRecognizeFlag(t *testing.T) {
	path := learnToFile(t, "dfa.yml")

	stdout, _, err := execute(t, "ab\nab", "recognize", "--automaton", path)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", stdout)
}

// TestRecognizeFormatFlag tests that --format overrides the extension of the description path
func TestRecognizeFormatFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfa.txt")
	_, _, err := execute(t, trainingSet, "learn", "--format", "yaml", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "initial: q1")

	stdout, _, err := execute(t, "ab\na\n", "recognize", "--format", "yaml", "--automaton", path)
	require.NoError(t, err)
	assert.Equal(t, "yes\nno\n", stdout)

	_, _, err = execute(t, "ab\n", "recognize", "--automaton", path)
	assert.True(t, errors.Is(err, automaton.ErrMalformedDescription))

	stdout, _, err = execute(t, "", "check", "--format", "yaml", "--automaton", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Automaton Description... ✅")
}

// TestRecognizeUndefined tests that verdicts before a fatal error are still written
func TestRecognizeUndefined(t *testing.T) {
	path := learnToFile(t, "dfa.json")

	stdout, _, err := execute(t, path+"\nab\nb\nab\n", "recognize")
	require.Error(t, err)
	assert.True(t, errors.Is(err, automaton.ErrUndefinedTransition))
	assert.Equal(t, "yes\n", stdout)
}

// TestRecognizeMissingDescription tests empty and unreadable description paths
func TestRecognizeMissingDescription(t *testing.T) {
	_, _, err := execute(t, "", "recognize")
	require.Error(t, err)
	assert.True(t, errors.Is(err, automaton.ErrMalformedDescription))
	assert.NotEmpty(t, errors.FlattenHints(err))

	_, _, err = execute(t, filepath.Join(t.TempDir(), "missing.json")+"\n", "recognize")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"initial": "q1"}`), 0644))
	_, _, err = execute(t, bad+"\n", "recognize")
	assert.True(t, errors.Is(err, automaton.ErrMalformedDescription))
}

// TestVerify tests agreement checks and the saved report
func TestVerify(t *testing.T) {
	path := learnToFile(t, "dfa.json")
	report := filepath.Join(t.TempDir(), "report.json")

	stdout, _, err := execute(t, trainingSet, "verify", "--automaton", path, "--report", report)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Examples: 2, agreed: 2, differences: 0")
	_, err = os.Stat(report)
	assert.NoError(t, err)

	stdout, _, err = execute(t, "2\nab-\nb+\n", "verify", "--automaton", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 examples disagree")
	assert.Contains(t, stdout, `word 1 "ab": expected no, got yes`)
	assert.Contains(t, stdout, `word 2 "b": expected yes, got undefined`)
}

// TestVerifyRequiresAutomaton tests the required flag
func TestVerifyRequiresAutomaton(t *testing.T) {
	_, _, err := execute(t, trainingSet, "verify")
	assert.Error(t, err)
}

// TestExport tests conversion to each target format
func TestExport(t *testing.T) {
	path := learnToFile(t, "dfa.json")

	stdout, _, err := execute(t, "", "export", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "digraph Automaton {"))
	assert.Contains(t, stdout, `"q3" [shape=doublecircle];`)

	stdout, _, err = execute(t, "", "export", path, "--to", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accepting:\n  - q3")

	out := filepath.Join(t.TempDir(), "copy.json")
	_, _, err = execute(t, "", "export", path, "--to", "json", "--output", out)
	require.NoError(t, err)
	original, err := os.ReadFile(path)
	require.NoError(t, err)
	copied, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(copied))

	_, _, err = execute(t, "", "export", path, "--to", "svg")
	assert.Error(t, err)

	_, _, err = execute(t, "", "export")
	assert.Error(t, err)
}

// TestMetricsDir tests that run statistics are written when requested
func TestMetricsDir(t *testing.T) {
	metrics := t.TempDir()
	_, _, err := execute(t, trainingSet, "learn", "--metrics-dir", metrics)
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(metrics, "learn", "*_learn_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, float64(2), stats["words"])
	assert.Equal(t, float64(3), stats["states"])
}

// TestCheck tests the self-check command
func TestCheck(t *testing.T) {
	path := learnToFile(t, "dfa.json")
	logs := t.TempDir()

	stdout, _, err := execute(t, "", "check", "--automaton", path, "--log-dir", logs)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Results: 4/4 checks passed")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	stdout, _, err = execute(t, "", "check", "--automaton", bad)
	require.Error(t, err)
	assert.Contains(t, stdout, "Automaton Description... ❌ FAILED")

	stdout, _, err = execute(t, "", "check", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, stdout, "Configuration Validation... ❌ FAILED")
}
