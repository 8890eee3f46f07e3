// Package cmd provides the CLI commands for Choreboard.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/output"
	"github.com/manav03panchal/choreboard/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
	flagStore  string
	flagDB     string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "choreboard",
	Short: "A household chore tracker",
	Long: `Choreboard tracks household chores: who does what, when, and for how long.

Run it as a REST server for the web client, or manage chores straight from
the terminal.

Examples:
  choreboard serve
  choreboard user add Alice
  choreboard task add "Cook meal" --user Alice --time 18:30 --duration 45m
  choreboard day yesterday
  choreboard analysis last month
  choreboard calendar --week`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initContext,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's schedule
		return runDay(cmd, nil)
	},
}

// initContext builds the runtime context from the global flags.
func initContext(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that never touch the store
	switch cmd.Name() {
	case "completion", "help", "version":
		return nil
	}

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return errors.NewValidationError("format", err.Error(), nil)
	}
	colorMode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return errors.NewValidationError("color", err.Error(), nil)
	}

	opts := runtime.DefaultOptions()
	opts.ConfigPath = flagConfig
	opts.Driver = flagStore
	opts.DBPath = flagDB
	opts.Format = format
	opts.ColorMode = colorMode
	opts.Debug = flagDebug
	opts.Writer = cmd.OutOrStdout()

	ctx, err = runtime.New(opts)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/choreboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "",
		"Storage backend: badger, sqlite, postgres")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Database path, or :memory:")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("choreboard %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits with the code for its category.
func Die(err error) {
	if flagFormat == string(output.FormatJSON) {
		f := &output.Formatter{Writer: os.Stderr, Format: output.FormatJSON}
		_ = f.JSON(output.ErrorResponse{Error: err.Error()})
	} else {
		fmt.Fprintln(os.Stderr, "Error: "+runtime.FormatError(err))
	}
	if ctx != nil {
		_ = ctx.Close()
	}
	os.Exit(runtime.ExitCode(err))
}
