package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/orderform/form"
	"github.com/reoring/orderform/internal/config"
	"github.com/reoring/orderform/internal/logging"
	"github.com/reoring/orderform/submit"
	"github.com/reoring/orderform/tui"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "orderform",
		Short: "Order a package from the terminal",
		Long: `orderform collects a name, an address and a contact preference
(no notification, email, or one or more phone numbers), validates the
order and records it.

Without a subcommand the interactive form is started.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForm(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: config.yaml in ., config, ../config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newValidateCmd(opts), newSchemaCmd())
	return cmd
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return nil, err
	}
	if o.verbose {
		cfg.Env.Debug = true
		cfg.Env.Log.Level = "debug"
	}
	return cfg, nil
}

// newRecorder opens the configured record file, or falls back to fallback.
// The returned close func is never nil.
func newRecorder(cfg *config.Config, logger *zap.Logger, fallback io.Writer) (*submit.Recorder, func() error, error) {
	out, closeFn := fallback, func() error { return nil }
	if cfg.Recorder.Path != "" {
		f, err := os.OpenFile(cfg.Recorder.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open record file: %w", err)
		}
		out, closeFn = f, f.Close
	}
	if out == nil {
		return submit.NewRecorder(logger), closeFn, nil
	}
	return submit.NewRecorder(logger, submit.WithOutput(out, cfg.RecorderFormat())), closeFn, nil
}

func runForm(ctx context.Context, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; only file logging is allowed here.
	logger := logging.Nop()
	if cfg.Env.Log.Path != "" {
		if logger, err = logging.New(cfg.Env.Log); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	rec, closeRec, err := newRecorder(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRec(); err != nil {
			logger.Error("[runForm] close record file failed", zap.Error(err))
		}
	}()

	f := form.New(rec, form.WithLogger(logger.Named("form")))
	m := tui.New(f, tui.WithLogger(logger.Named("tui")), tui.WithContext(ctx))
	logger.Info("starting order form", zap.String("env", cfg.Env.Env))
	return tui.Run(ctx, m)
}
