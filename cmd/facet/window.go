package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/internal/game"
	"github.com/taigrr/facet/internal/window"
)

func newWindowCmd(opts *rootOptions) *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the scene in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd.Context(), opts, flags)
		},
	}
	cmd.Flags().IntVar(&flags.Width, "width", 0, "window width in pixels (default 800)")
	cmd.Flags().IntVar(&flags.Height, "height", 0, "window height in pixels (default 600)")
	return cmd
}

func runWindow(ctx context.Context, opts *rootOptions, flags config.Flags) error {
	log, closeLog, err := opts.logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := opts.loadConfig(flags)
	if err != nil {
		return err
	}
	g, err := game.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := opts.watchConfig(ctx, g, flags, log); err != nil {
		return err
	}

	return window.Run(ctx, g, window.Options{
		Title:  "facet",
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	}, log)
}
