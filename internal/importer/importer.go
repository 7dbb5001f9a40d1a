package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"filmimport/internal/config"
	"filmimport/internal/fileutil"
	"filmimport/internal/ledger"
	"filmimport/internal/logging"
	"filmimport/internal/profile"
)

// ErrLocked is returned when another import holds the run lock.
var ErrLocked = errors.New("another filmimport run holds the lock")

// Assembler builds a profile for one stock folder.
type Assembler interface {
	Assemble(dir string) (*profile.Profile, error)
}

// Recorder persists finished runs.
type Recorder interface {
	RecordRun(ctx context.Context, run ledger.Run) error
}

// Importer drives a complete import run.
type Importer struct {
	cfg       *config.Config
	assembler Assembler
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs an Importer. recorder may be nil to skip the ledger.
func New(cfg *config.Config, assembler Assembler, recorder Recorder, logger *slog.Logger) (*Importer, error) {
	if cfg == nil || assembler == nil {
		return nil, errors.New("importer requires config and assembler")
	}
	return &Importer{
		cfg:       cfg,
		assembler: assembler,
		recorder:  recorder,
		logger:    logging.NewComponentLogger(logger, "importer"),
		now:       time.Now,
	}, nil
}

// Run imports every stock folder under root. The returned error is non-nil
// only for setup failures or cancellation; per-folder problems are reported
// through the summary.
func (i *Importer) Run(ctx context.Context, root string) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %s is not a directory", root)
	}
	if err := i.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare directories: %w", err)
	}

	lock := flock.New(i.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, i.cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			i.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	summary := &Summary{
		RunID:     uuid.NewString(),
		InputRoot: root,
		OutputDir: i.cfg.Paths.OutputDir,
		StartedAt: i.now(),
	}
	logger := i.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("import started",
		logging.String("input_root", root),
		logging.String("output_dir", summary.OutputDir),
	)

	dirs, err := Discover(root, i.cfg.Import.MarkerSuffix, logger)
	if err != nil {
		return nil, err
	}

	written := make(map[string]string, len(dirs))
	var runErr error
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("import interrupted: %w", err)
			break
		}
		result := i.processFolder(logger, dir)
		if result.Status == StatusImported {
			if prev, dup := written[result.Slug]; dup {
				logging.WarnWithContext(logger, "profile overwritten by another folder with the same name", "duplicate_slug",
					logging.String(logging.FieldStock, result.Slug),
					logging.String("previous_dir", prev),
					logging.String(logging.FieldPath, dir),
					logging.String(logging.FieldErrorHint, "rename one of the stock folders"),
					logging.String(logging.FieldImpact, "only the last folder's profile is kept"),
				)
			}
			written[result.Slug] = dir
		}
		summary.Results = append(summary.Results, result)
	}
	summary.FinishedAt = i.now()

	logger.Info("import finished",
		logging.Int("imported", summary.Count(StatusImported)),
		logging.Int("skipped", summary.Count(StatusSkipped)),
		logging.Int("failed", summary.Count(StatusFailed)),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	i.record(ctx, logger, summary)
	return summary, runErr
}

func (i *Importer) processFolder(logger *slog.Logger, dir string) Result {
	slug := filepath.Base(dir)
	result := Result{Slug: slug, Dir: dir}
	stockLogger := logger.With(logging.String(logging.FieldStock, slug))

	p, err := i.assembler.Assemble(dir)
	switch {
	case errors.Is(err, profile.ErrNoSensitometry):
		result.Status = StatusSkipped
		result.Reason = profile.ErrNoSensitometry.Error()
		stockLogger.Info("skipping stock",
			logging.Args(logging.DecisionAttrs("profile_emit", "skipped", result.Reason)...)...)
		return result
	case err != nil:
		return i.fail(stockLogger, result, "assemble profile", err)
	}

	data, err := profile.Encode(p)
	if err != nil {
		return i.fail(stockLogger, result, "encode profile", err)
	}
	outPath := filepath.Join(i.cfg.Paths.OutputDir, slug+".json")
	if err := fileutil.WriteFileAtomic(outPath, data, 0o644); err != nil {
		return i.fail(stockLogger, result, "write profile", err)
	}

	result.Status = StatusImported
	result.OutputPath = outPath
	result.SHA256 = fileutil.SHA256Hex(data)
	stockLogger.Info("imported stock",
		logging.String(logging.FieldPath, outPath),
		logging.String("manufacturer", p.Meta.Manufacturer),
		logging.Int("iso", p.Meta.ISO),
	)
	return result
}

func (i *Importer) fail(logger *slog.Logger, result Result, step string, err error) Result {
	result.Status = StatusFailed
	result.Reason = fmt.Sprintf("%s: %v", step, err)
	logging.WarnWithContext(logger, "stock import failed", "stock_failed",
		logging.String("step", step),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the stock folder and output directory"),
		logging.String(logging.FieldImpact, "profile not written for this stock"),
	)
	return result
}

func (i *Importer) record(ctx context.Context, logger *slog.Logger, summary *Summary) {
	if i.recorder == nil {
		return
	}
	// Record even after cancellation so interrupted runs are still listed.
	if err := i.recorder.RecordRun(context.WithoutCancel(ctx), summary.LedgerRun()); err != nil {
		logging.WarnWithContext(logger, "failed to record run in ledger", "ledger_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check ledger.path permissions or disable the ledger"),
			logging.String(logging.FieldImpact, "run history is incomplete"),
		)
	}
}
