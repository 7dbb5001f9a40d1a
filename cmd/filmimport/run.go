package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"filmimport/internal/config"
	"filmimport/internal/importer"
	"filmimport/internal/ledger"
	"filmimport/internal/logging"
)

type runOptions struct {
	inputDir string
	// outputDir overrides paths.output_dir when non-empty.
	outputDir string
	out       io.Writer
}

func runImport(ctx context.Context, opts runOptions) error {
	cfg, cfgPath, cfgExists, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.outputDir != "" {
		if err := cfg.SetOutputDir(opts.outputDir); err != nil {
			return err
		}
	}
	root, err := config.ExpandPath(opts.inputDir)
	if err != nil {
		return fmt.Errorf("input_dir: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if cfgExists {
		logger.Debug("configuration loaded", logging.String(logging.FieldPath, cfgPath))
	} else {
		logger.Debug("no configuration file found; using defaults", logging.String("expected_path", cfgPath))
	}

	ref, err := importer.LoadReference(cfg)
	if err != nil {
		logging.ErrorWithContext(logger, "reference data unavailable", "reference_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install the basis table at "+cfg.BasisPath()+" or set reference.dir"),
		)
		return fmt.Errorf("load reference data: %w", err)
	}
	logger.Debug("reference data loaded", logging.Int("wavelengths", ref.Len()))

	var recorder importer.Recorder
	var store *ledger.Store
	if cfg.Ledger.Enabled {
		store = openLedger(ctx, cfg, logger)
		if store != nil {
			defer store.Close()
			logger.Debug("ledger opened", logging.String(logging.FieldPath, store.Path()))
			recorder = store
		}
	}

	imp, err := importer.New(cfg, importer.NewAssembler(cfg, ref, logger), recorder, logger)
	if err != nil {
		return err
	}
	summary, runErr := imp.Run(ctx, root)
	if summary != nil {
		fmt.Fprintln(opts.out, renderSummary(summary, shouldColorize(opts.out)))
		if store != nil {
			if line := reportChanges(ctx, store, summary, logger); line != "" {
				fmt.Fprintln(opts.out, line)
			}
		}
	}
	return runErr
}

// openLedger returns nil when the ledger cannot be opened; the run proceeds without it.
func openLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger) *ledger.Store {
	store, err := ledger.Open(ctx, cfg.Ledger.Path)
	if err != nil {
		logging.WarnWithContext(logger, "ledger unavailable", "ledger_open_failed",
			logging.String(logging.FieldPath, cfg.Ledger.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check ledger.path or set ledger.enabled = false"),
			logging.String(logging.FieldImpact, "this run will not be recorded"),
		)
		return nil
	}
	return store
}
