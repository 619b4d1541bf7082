// Package main provides the ytf CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/ytf/internal/config"
	"github.com/gauthierbraillon/ytf/internal/service"
	"github.com/gauthierbraillon/ytf/internal/storage"
	"github.com/gauthierbraillon/ytf/internal/store"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version, then the module version from
// build info, which is what go install stamps.
func resolveVersion(version string, info *debug.BuildInfo) string {
	if version != "dev" {
		return version
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

// newRootCmd creates the root command for ytf CLI.
func newRootCmd() *cobra.Command {
	info, _ := debug.ReadBuildInfo()

	rootCmd := &cobra.Command{
		Use:     "ytf",
		Short:   "React to moments in videos and save them for later",
		Long:    "ytf records timestamped emoji reactions to videos and keeps a watch-later list of moments to come back to.",
		Version: resolveVersion(version, info),
	}

	rootCmd.SetVersionTemplate("ytf version {{.Version}}\n")

	rootCmd.AddCommand(newFeedbackCmd())
	rootCmd.AddCommand(newLaterCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVideoCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds what commands that touch the collections need.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend storage.Backend
	svc     *service.Service
}

// openApp loads configuration, opens storage and loads both collections.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))

	backend, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	feedback := store.NewFeedback(backend, store.WithLogger(logger))
	later := store.NewWatchLater(backend, store.WithLogger(logger))
	for _, s := range []interface{ Load() error }{feedback, later} {
		if err := s.Load(); err != nil {
			_ = backend.Close()
			return nil, err
		}
	}

	logger.Debug("storage ready", "kind", cfg.Storage, "dir", cfg.DataDir)
	return &app{cfg: cfg, logger: logger, backend: backend, svc: service.New(feedback, later)}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the resolved ytf configuration. Settings come from config.yaml in the config directory, .env and YTF_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config directory: %s\n", cfg.ConfigDir)
			fmt.Fprintf(out, "Data directory:   %s\n", cfg.DataDir)
			fmt.Fprintf(out, "Storage:          %s\n", cfg.Storage)
			fmt.Fprintf(out, "Server address:   %s\n", cfg.Addr)
			fmt.Fprintf(out, "Log level:        %s\n", cfg.LogLevel)
			return nil
		},
	}

	return cmd
}
