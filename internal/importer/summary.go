package importer

import (
	"time"

	"filmimport/internal/ledger"
)

// Status is the outcome of one stock folder.
type Status string

const (
	StatusImported Status = "imported"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Result describes what happened to one stock folder.
type Result struct {
	Slug       string
	Dir        string
	Status     Status
	OutputPath string
	SHA256     string
	Reason     string
}

// Summary collects the results of one run in processing order.
type Summary struct {
	RunID      string
	InputRoot  string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Count returns the number of results with status s.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// LedgerRun converts the summary into its ledger record.
func (s *Summary) LedgerRun() ledger.Run {
	run := ledger.Run{
		ID:         s.RunID,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		InputRoot:  s.InputRoot,
		OutputDir:  s.OutputDir,
		Imported:   s.Count(StatusImported),
		Skipped:    s.Count(StatusSkipped),
		Failed:     s.Count(StatusFailed),
		Results:    make([]ledger.StockResult, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		run.Results = append(run.Results, ledger.StockResult{
			Slug:       r.Slug,
			SourceDir:  r.Dir,
			Status:     string(r.Status),
			OutputPath: r.OutputPath,
			SHA256:     r.SHA256,
			Reason:     r.Reason,
		})
	}
	return run
}
