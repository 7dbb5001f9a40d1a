// Package main hosts the filmimport CLI.
//
// A single Cobra command takes the input root and an optional --output
// directory, resolves configuration and the spectral reference tables, runs
// the importer, and prints a per-stock summary table. Setup failures exit
// nonzero; per-stock problems are reported in the summary and logs only.
package main
