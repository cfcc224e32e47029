package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/internal/game"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	fps        int
	background string
	mode       string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "facet",
		Short: "Flat-shaded 3D scenes in your terminal",
		Long: "facet draws a scene of flat-shaded polygon meshes with backface culling.\n" +
			"Without a config file it shows the built-in demo scene.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "scene file (.toml, .yaml, .json); watched for changes")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second (default 60)")
	f.StringVar(&opts.background, "bg", "", "background color, #rgb or #rrggbb")
	f.StringVar(&opts.mode, "mode", "", "draw mode: filled or wireframe")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&opts.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(newViewCmd(opts), newWindowCmd(opts), newSnapshotCmd(opts))
	return root
}

// loadConfig reads the config file, or the demo scene when none is given,
// applies flag overrides and validates the result.
func (o *rootOptions) loadConfig(flags config.Flags) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags.FPS = o.fps
	flags.Background = o.background
	flags.Mode = o.mode
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// logger builds the process logger. Logs go to --log-file when set and to
// fallback otherwise. The returned func closes the log file.
func (o *rootOptions) logger(fallback io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w, closeFn := fallback, func() error { return nil }
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// watchConfig reloads the scene into g whenever the config file changes.
// It does nothing without a config file.
func (o *rootOptions) watchConfig(ctx context.Context, g *game.Game, flags config.Flags, log *slog.Logger) error {
	if o.configPath == "" {
		return nil
	}
	w, err := config.Watch(o.configPath, log)
	if err != nil {
		return err
	}
	go func() {
		err := w.Run(ctx, func() {
			cfg, err := o.loadConfig(flags)
			if err != nil {
				log.Warn("config reload failed", "err", err)
				return
			}
			g.RequestReload(cfg)
		})
		if err != nil {
			log.Error("config watcher stopped", "err", err)
		}
	}()
	return nil
}
