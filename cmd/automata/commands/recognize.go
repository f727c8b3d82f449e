/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: recognize.go
Description: Recognize command implementation. Loads an automaton description named on
the first input line (or by --automaton) and writes a yes/no verdict for every word of
the remaining input.
*/

package commands

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/kleascm/akaylee-automata/pkg/recognition"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunRecognize classifies the words on standard input
func RunRecognize(cmd *cobra.Command, v *viper.Viper) (err error) {
	rc, err := newRunContext(cmd, v, core.ModeRecognize)
	if err != nil {
		return err
	}
	defer func() { err = rc.finish(err) }()

	ctx := cmd.Context()
	in := bufio.NewReader(cmd.InOrStdin())

	location := v.GetString(config.KeyAutomaton)
	if location == "" {
		line, readErr := in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return errors.Wrap(readErr, "failed to read automaton path")
		}
		location = strings.TrimSpace(line)
	}
	if location == "" {
		err := errors.Wrap(automaton.ErrMalformedDescription, "no automaton description given")
		return errors.WithHint(err, "put the description path on the first input line or pass --automaton")
	}

	a, err := rc.loadAutomaton(ctx, location)
	if err != nil {
		return err
	}
	rc.recordAutomaton(a)

	recognizer := recognition.New(a)
	recognizer.SetReporter(rc.reporter)
	return recognizer.Run(ctx, in, cmd.OutOrStdout())
}
