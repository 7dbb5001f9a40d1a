package ledger

import "time"

// Run summarizes one import invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	InputRoot  string
	OutputDir  string
	Imported   int
	Skipped    int
	Failed     int
	Results    []StockResult
}

// StockResult is the outcome for one stock folder.
type StockResult struct {
	Slug       string
	SourceDir  string
	Status     string
	OutputPath string
	SHA256     string
	Reason     string
}
