/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Command tree for the automata CLI. Builds the root command with its
persistent logging/config flags and the recognize, learn, verify, export and check
subcommands, binding every flag into one viper instance.
*/

package commands

import (
	"time"

	"github.com/kleascm/akaylee-automata/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version of the automata CLI
const Version = "1.0.0"

// NewRootCommand builds the CLI with its own viper instance
func NewRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "automata",
		Short: "Akaylee Automata - DFA recognizer and online learner",
		Long: `Akaylee Automata recognizes words with a deterministic finite automaton and
learns such automata online from labeled example words. The learner emits the same
description format the recognizer consumes.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Also write logs to a timestamped file in this directory")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Bool("log-colors", false, "Colorize console logs")
	rootCmd.PersistentFlags().String("metrics-dir", "", "Write run statistics as JSON into this directory")
	rootCmd.PersistentFlags().String("format", "json", "Automaton description format (json, yaml)")
	rootCmd.PersistentFlags().Duration("fetch-timeout", 10*time.Second, "Timeout for http(s) inputs")

	// Bind flags to viper
	v.BindPFlag(config.KeyConfig, rootCmd.PersistentFlags().Lookup("config"))
	v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	v.BindPFlag(config.KeyLogDir, rootCmd.PersistentFlags().Lookup("log-dir"))
	v.BindPFlag(config.KeyLogMaxFiles, rootCmd.PersistentFlags().Lookup("log-max-files"))
	v.BindPFlag(config.KeyLogColors, rootCmd.PersistentFlags().Lookup("log-colors"))
	v.BindPFlag(config.KeyMetricsDir, rootCmd.PersistentFlags().Lookup("metrics-dir"))
	v.BindPFlag(config.KeyFormat, rootCmd.PersistentFlags().Lookup("format"))
	v.BindPFlag(config.KeyFetchTimeout, rootCmd.PersistentFlags().Lookup("fetch-timeout"))

	// Add recognize command
	recognizeCmd := &cobra.Command{
		Use:   "recognize",
		Short: "Classify words against an automaton",
		Long: `Read the path of an automaton description from the first input line (or
--automaton), then classify every newline-terminated word of the remaining input,
writing "yes" or "no" per word. A symbol without a transition aborts the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRecognize(cmd, v)
		},
	}
	recognizeCmd.Flags().String("automaton", "", "Automaton description location (file, URL); default: first input line")
	recognizeCmd.PreRunE = bindLocalFlags(v)
	rootCmd.AddCommand(recognizeCmd)

	// Add learn command
	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn an automaton from labeled words",
		Long: `Read a word count N from the first input line, then N words each labeled with
"+" (accept) or "-" (reject), and write a consistent automaton description.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunLearn(cmd, v)
		},
	}
	learnCmd.Flags().String("output", "", "Write the description to this file instead of standard output")
	learnCmd.Flags().String("examples", "-", "Labeled word stream location (file, URL, - for stdin)")
	learnCmd.PreRunE = bindLocalFlags(v)
	rootCmd.AddCommand(learnCmd)

	// Add verify command
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check an automaton against labeled words",
		Long: `Replay every labeled word of a training stream through an automaton and report
the words whose verdict disagrees with their label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunVerify(cmd, v)
		},
	}
	verifyCmd.Flags().String("automaton", "", "Automaton description location (required)")
	verifyCmd.Flags().String("examples", "-", "Labeled word stream location (file, URL, - for stdin)")
	verifyCmd.Flags().String("report", "", "Write the agreement report as JSON to this file")
	verifyCmd.MarkFlagRequired("automaton")
	verifyCmd.PreRunE = bindLocalFlags(v)
	rootCmd.AddCommand(verifyCmd)

	// Add export command
	exportCmd := &cobra.Command{
		Use:   "export <description>",
		Short: "Convert an automaton description (dot, json, yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunExport(cmd, v, args[0])
		},
	}
	exportCmd.Flags().String("to", "dot", "Target format (dot, json, yaml)")
	exportCmd.Flags().String("output", "", "Write to this file instead of standard output")
	exportCmd.PreRunE = bindLocalFlags(v)
	rootCmd.AddCommand(exportCmd)

	// Add check command for built-in self-checks
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Perform built-in self-checks",
		Long: `Validate the configuration, the log and metrics directories and, when given,
an automaton description. Useful for CI/CD integration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PerformSelfCheck(cmd, v)
		},
	}
	checkCmd.Flags().String("automaton", "", "Automaton description to validate")
	checkCmd.PreRunE = bindLocalFlags(v)
	rootCmd.AddCommand(checkCmd)

	return rootCmd
}

// bindLocalFlags binds the running subcommand's own flags into v. Subcommands share
// flag names, so binding happens only for the command actually executed.
func bindLocalFlags(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return v.BindPFlags(cmd.LocalNonPersistentFlags())
	}
}
