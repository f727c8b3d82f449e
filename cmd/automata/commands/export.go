/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: export.go
Description: Export command implementation. Converts an automaton description to
Graphviz DOT, JSON or YAML.
*/

package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/automaton"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ExportDOT is the Graphviz target of the export command
const ExportDOT = "dot"

// RunExport converts the description at location to the --to format
func RunExport(cmd *cobra.Command, v *viper.Viper, location string) (err error) {
	rc, err := newRunContext(cmd, v, core.ModeExport)
	if err != nil {
		return err
	}
	defer func() { err = rc.finish(err) }()

	a, err := rc.loadAutomaton(cmd.Context(), location)
	if err != nil {
		return err
	}
	rc.recordAutomaton(a)

	target := v.GetString("to")
	if target == ExportDOT {
		return rc.writeOutput(rc.cfg.Output, func(w io.Writer) error {
			_, err := io.WriteString(w, a.ExportDOT())
			return err
		})
	}

	format, err := automaton.ParseFormat(target)
	if err != nil {
		return errors.WithHint(err, "supported export targets: dot, json, yaml")
	}

	description := a.Describe()
	return rc.writeOutput(rc.cfg.Output, func(w io.Writer) error {
		return automaton.EncodeDescription(w, description, format)
	})
}
