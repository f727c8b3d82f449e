/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learn.go
Description: Learn command implementation. Reads a word count and that many labeled
words, builds a consistent automaton online and writes its description.
*/

package commands

import (
	"io"

	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/kleascm/akaylee-automata/pkg/inference"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunLearn learns an automaton from the labeled word stream
func RunLearn(cmd *cobra.Command, v *viper.Viper) (err error) {
	rc, err := newRunContext(cmd, v, core.ModeLearn)
	if err != nil {
		return err
	}
	defer func() { err = rc.finish(err) }()

	ctx := cmd.Context()
	in, err := rc.openInput(ctx, v.GetString(config.KeyExamples))
	if err != nil {
		return err
	}
	defer in.Close()

	learner := inference.NewLearner()
	learner.SetReporter(rc.reporter)
	if err := learner.LearnStream(ctx, in); err != nil {
		return err
	}
	rc.recordAutomaton(learner.Automaton())

	output := rc.cfg.Output
	format := rc.cfg.Format
	if output != "" && !cmd.Flags().Changed("format") {
		format = automaton.FormatFromPath(output)
	}

	description := learner.Describe()
	return rc.writeOutput(output, func(w io.Writer) error {
		return automaton.EncodeDescription(w, description, format)
	})
}
