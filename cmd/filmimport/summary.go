package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"filmimport/internal/importer"
	"filmimport/internal/textutil"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func renderSummary(summary *importer.Summary, colorize bool) string {
	var b strings.Builder

	if len(summary.Results) == 0 {
		fmt.Fprintf(&b, "No film stocks found under %s\n", summary.InputRoot)
	} else {
		b.WriteString(renderResultsTable(summary.Results, colorize))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "Imported %d, skipped %d, failed %d (run %s)",
		summary.Count(importer.StatusImported),
		summary.Count(importer.StatusSkipped),
		summary.Count(importer.StatusFailed),
		summary.RunID,
	)
	return b.String()
}

// detailWidth wraps long failure reasons so the table stays terminal sized.
const detailWidth = 60

func renderResultsTable(results []importer.Result, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stock", "Status", "Output", "Detail"})
	for _, r := range results {
		output := r.OutputPath
		if output != "" {
			output = filepath.Base(output)
		}
		tw.AppendRow(table.Row{
			r.Slug,
			statusLabel(r.Status, colorize),
			textutil.CellOrPlaceholder(output),
			textutil.CellOrPlaceholder(r.Reason),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AlignHeader: text.AlignLeft},
		{Number: 2, AlignHeader: text.AlignLeft},
		{Number: 3, AlignHeader: text.AlignLeft},
		{Number: 4, AlignHeader: text.AlignLeft, WidthMax: detailWidth},
	})
	return tw.Render()
}

func statusLabel(status importer.Status, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	switch status {
	case importer.StatusImported:
		return ansiGreen + label + ansiReset
	case importer.StatusSkipped:
		return ansiYellow + label + ansiReset
	case importer.StatusFailed:
		return ansiRed + label + ansiReset
	default:
		return label
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
