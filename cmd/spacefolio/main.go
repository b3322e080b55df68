package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"spacefolio/internal/config"
	"spacefolio/internal/game"
	"strings"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	seed       int64
	logLevel   string
}

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "spacefolio:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "spacefolio",
		Short:         "Scroll-driven 3D space scene",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return game.New(cfg, cfg.NewLogger()).Run(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath, "TOML config file")
	pf.Int64Var(&flags.seed, "seed", 0, "star field seed (0 = from config, then clock)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newSnapshotCmd(flags))
	return cmd
}

// load reads the config file and applies flag overrides.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Scene.Seed = f.seed
	}
	if f.logLevel != "" {
		if _, err := config.ParseLevel(f.logLevel); err != nil {
			return cfg, err
		}
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}
