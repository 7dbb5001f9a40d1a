package main

import (
	"context"
	"fmt"
	"log/slog"

	"filmimport/internal/importer"
	"filmimport/internal/ledger"
	"filmimport/internal/logging"
)

// profileChanges counts imported profiles against the previous ledger run.
type profileChanges struct {
	previousRun string
	added       int
	changed     int
	unchanged   int
}

func (c profileChanges) String() string {
	return fmt.Sprintf("Since run %s: %d new, %d changed, %d unchanged",
		c.previousRun, c.added, c.changed, c.unchanged)
}

// compareWithPrevious reports how this run's profiles differ from the last
// recorded run. ok is false when the ledger holds no earlier run.
func compareWithPrevious(ctx context.Context, store *ledger.Store, summary *importer.Summary) (profileChanges, bool, error) {
	runs, err := store.Recent(ctx, 2)
	if err != nil {
		return profileChanges{}, false, err
	}
	var previous *ledger.Run
	for i := range runs {
		if runs[i].ID != summary.RunID {
			previous = &runs[i]
			break
		}
	}
	if previous == nil {
		return profileChanges{}, false, nil
	}

	results, err := store.Results(ctx, previous.ID)
	if err != nil {
		return profileChanges{}, false, err
	}
	prior := make(map[string]string, len(results))
	for _, r := range results {
		if r.Status == string(importer.StatusImported) && r.SHA256 != "" {
			prior[r.Slug] = r.SHA256
		}
	}

	changes := profileChanges{previousRun: previous.ID}
	for _, r := range summary.Results {
		if r.Status != importer.StatusImported {
			continue
		}
		sum, seen := prior[r.Slug]
		switch {
		case !seen:
			changes.added++
		case sum != r.SHA256:
			changes.changed++
		default:
			changes.unchanged++
		}
	}
	return changes, true, nil
}

// reportChanges returns the comparison line, or "" when there is nothing to compare.
func reportChanges(ctx context.Context, store *ledger.Store, summary *importer.Summary, logger *slog.Logger) string {
	changes, ok, err := compareWithPrevious(ctx, store, summary)
	if err != nil {
		logging.WarnWithContext(logger, "ledger history unavailable", "ledger_query_failed",
			logging.String(logging.FieldPath, store.Path()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no comparison with the previous run"),
		)
		return ""
	}
	if !ok {
		logger.Debug("no previous run in ledger", logging.String(logging.FieldPath, store.Path()))
		return ""
	}
	return changes.String()
}
