/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	debug      bool
	phase      string
	color      string
	dump       bool
	strict     bool
	jobs       int

	cfg    Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree, so tests
// can run commands side by side.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "subst",
		Short: "Apply generic substitutions to polymorphic types",
		Long: `subst instantiates polymorphic types, signatures, and where-clauses with a
substitution table, reporting parameters that the table cannot resolve.

Fixtures are YAML files declaring the item's parameters, the table, and the entities
to instantiate. Defaults come from subst.toml in the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", DefaultConfigFile, "config file")
	flags.BoolVar(&opts.debug, "debug", false, "log debug output to stderr")
	flags.StringVar(&opts.phase, "phase", "", "compilation phase: typeck or trans")
	flags.StringVar(&opts.color, "color", "", "color diagnostics: auto, always, or never")
	flags.BoolVar(&opts.dump, "dump", false, "print the structure of each result")
	flags.BoolVar(&opts.strict, "strict", false, "exit with an error when substitution reports errors")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "fixtures to apply concurrently, 0 for one per CPU")

	rootCmd.AddCommand(newApplyCmd(opts))
	return rootCmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(o.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("phase") {
		cfg.Phase = o.phase
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("dump") {
		cfg.Dump = o.dump
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger.Debug("configured", "config", o.configFile, "phase", cfg.Phase, "color", cfg.Color, "jobs", cfg.Jobs)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
