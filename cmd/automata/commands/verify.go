/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: verify.go
Description: Verify command implementation. Replays a labeled word stream through an
automaton and reports every word whose verdict disagrees with its label.
*/

package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/kleascm/akaylee-automata/pkg/analysis"
	"github.com/kleascm/akaylee-automata/pkg/core"
	"github.com/kleascm/akaylee-automata/pkg/inference"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunVerify checks an automaton against labeled examples
func RunVerify(cmd *cobra.Command, v *viper.Viper) (err error) {
	rc, err := newRunContext(cmd, v, core.ModeVerify)
	if err != nil {
		return err
	}
	defer func() { err = rc.finish(err) }()

	ctx := cmd.Context()
	a, err := rc.loadAutomaton(ctx, rc.cfg.Automaton)
	if err != nil {
		return err
	}
	rc.recordAutomaton(a)

	in, err := rc.openInput(ctx, rc.cfg.Examples)
	if err != nil {
		return err
	}
	defer in.Close()

	examples, err := inference.ReadExamples(ctx, in)
	if err != nil {
		return err
	}

	for _, example := range examples {
		rc.stats.Words++
		rc.stats.Symbols += len([]rune(example.Word))
		if example.Label == inference.LabelAccept {
			rc.stats.Accepted++
		} else {
			rc.stats.Rejected++
		}
	}

	analyzer := analysis.NewAgreementAnalyzer(rc.logger.GetLogger())
	report := analyzer.Analyze(a, examples)
	rc.stats.Mismatches = len(report.Differences)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Akaylee Automata - Agreement Check")
	fmt.Fprintln(out, "=====================================")
	fmt.Fprintf(out, "📊 Examples: %d, agreed: %d, differences: %d\n",
		report.Examples, report.Agreed, len(report.Differences))
	for _, diff := range report.Differences {
		fmt.Fprintf(out, "  ❌ word %d %q: expected %s, got %s", diff.Index, diff.Word, diff.Expected, diff.Actual)
		if diff.Detail != "" {
			fmt.Fprintf(out, " (%s)", diff.Detail)
		}
		fmt.Fprintln(out)
	}

	if rc.cfg.Report != "" {
		if err := analyzer.SaveReport(report, rc.cfg.Report); err != nil {
			return err
		}
		fmt.Fprintf(out, "📄 Report: %s\n", rc.cfg.Report)
	}

	if !report.Consistent() {
		return errors.Newf("%d of %d examples disagree with the automaton",
			len(report.Differences), report.Examples)
	}

	fmt.Fprintln(out, "✅ Automaton agrees with every example")
	return nil
}
