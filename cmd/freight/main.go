// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command freight builds single-crate Rust projects with rustc.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/freight/internal/logging"
)

const version = "0.1.0"

func main() {
	// Env vars: FREIGHT_WORKDIR, FREIGHT_TOOLCHAIN, etc.
	viper.SetEnvPrefix("FREIGHT")
	viper.AutomaticEnv()

	if viper.GetString("stage") == stage1 {
		if err := runStage1(os.Args[1:], os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command with its global flags and subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "freight",
		Short:         "Alternative for Cargo",
		Long:          "freight compiles the library and binary of a single-crate Rust project with rustc.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Config{Level: viper.GetString("log-level")})
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Directory to start project root discovery from")
	rootCmd.PersistentFlags().String("toolchain", "rustc", "Compiler executable")
	rootCmd.PersistentFlags().String("edition", "2021", "Rust edition (2015, 2018, 2021)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("bootstrap-crate", "freight", "Crate name used by bootstrap")

	// Bind flags to viper.
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("toolchain", rootCmd.PersistentFlags().Lookup("toolchain"))
	viper.BindPFlag("edition", rootCmd.PersistentFlags().Lookup("edition"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("bootstrap-crate", rootCmd.PersistentFlags().Lookup("bootstrap-crate"))

	// Add commands.
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print freight version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "freight %s\n", version)
		},
	}
}
