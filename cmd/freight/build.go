// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/freight/internal/watch"
	"github.com/petar-djukic/freight/pkg/freight"
)

// newBuildCmd creates the "build" command.
func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the current project",
		Long:  "Build compiles src/lib.rs and/or src/main.rs of the project containing the working directory, library first.",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
	cmd.Flags().Bool("json", false, "Print the build result as JSON")
	return cmd
}

// newBootstrapCmd creates the "bootstrap" command.
func newBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Build the stage-1 compiler into target/bootstrap_stage1",
		Args:  cobra.NoArgs,
		RunE:  runBootstrap,
	}
	cmd.Flags().Bool("json", false, "Print the bootstrap result as JSON")
	return cmd
}

// newWatchCmd creates the "watch" command.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever sources under src/ change",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
}

// configFromViper assembles the freight config from flags and environment.
func configFromViper() freight.Config {
	return freight.Config{
		WorkDir:        viper.GetString("workdir"),
		Toolchain:      viper.GetString("toolchain"),
		Edition:        viper.GetString("edition"),
		BootstrapCrate: viper.GetString("bootstrap-crate"),
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	f, err := freight.New(configFromViper())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := f.Build(ctx)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printResult(cmd.OutOrStdout(), result)
	}
	return err
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	f, err := freight.New(configFromViper())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := f.Bootstrap(ctx)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		printResult(cmd.OutOrStdout(), result)
	}
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	f, err := freight.New(configFromViper())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// The first build also locates the root; only discovery failures that
	// leave no root to watch are fatal.
	result, err := f.Build(ctx)
	if result.Root == "" {
		return err
	}
	if err != nil && !errors.Is(err, freight.ErrNothingToCompile) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	w, err := watch.New(watch.Config{
		Dir: filepath.Join(result.Root, "src"),
		OnChange: func(ctx context.Context, _ []string) error {
			_, err := f.Build(ctx)
			return err
		},
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// printResult outputs the result as JSON.
func printResult(w io.Writer, result *freight.Result) {
	if result == nil {
		return
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(out))
}
