package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"headshot-viewer/internal/config"
	"headshot-viewer/internal/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
	directory  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "headshot-viewer",
		Short: "Browse, select and adjust headshot images",
		Long: `Headshot Viewer loads a directory of headshots into a gallery, lets you
select images and apply presets or batch adjustments, and edits the current
image's parameters against an image-processing backend.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file (default config.toml)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVarP(&opts.directory, "directory", "d", "", "directory to load at startup")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, cfg.Logging.Format, level)

	app, err := NewApplication(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("Application", err, nil)
		return err
	}
	return app.Run(opts.directory)
}
