package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/orderform"
	"github.com/reoring/orderform/internal/config"
	"github.com/reoring/orderform/internal/logging"
	"github.com/reoring/orderform/order"
)

var errRejected = errors.New("order rejected")

func newValidateCmd(global *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate an order candidate and record it",
		Long: `Reads a JSON or YAML order candidate from a file or stdin, validates it
and records the narrowed order. Field errors are printed to stderr and the
command exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			return runValidate(cmd, global, src, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json or yaml (default: by file extension, json for stdin)")
	return cmd
}

func runValidate(cmd *cobra.Command, global *globalOptions, src, format string) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Env.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f := orderform.FormatFromPath(src)
	if format != "" {
		if f, err = orderform.ParseFormat(format); err != nil {
			return err
		}
	}

	var r io.Reader = cmd.InOrStdin()
	if src != "-" {
		file, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open candidate: %w", err)
		}
		defer file.Close()
		r = file
	}

	raw, err := orderform.Decode(r, f)
	if err == nil {
		var sub orderform.Submission
		sub, err = order.NewValidator().Validate(cmd.Context(), raw)
		if err == nil {
			return record(cmd, cfg, logger, sub)
		}
	}

	fe, ok := orderform.AsFieldErrors(err)
	if !ok {
		return err
	}
	logger.Debug("candidate rejected", zap.String("source", src), zap.Int("errors", len(fe)))
	for _, e := range fe {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", e.Path, e.Message, e.Code)
	}
	return fmt.Errorf("%w: %d field error(s)", errRejected, len(fe))
}

func record(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, sub orderform.Submission) error {
	rec, closeRec, err := newRecorder(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := rec.Handle(cmd.Context(), sub); err != nil {
		_ = closeRec()
		return err
	}
	return closeRec()
}
