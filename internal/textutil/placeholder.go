package textutil

import "strings"

// Placeholder is shown for empty table cells.
const Placeholder = "-"

// CellOrPlaceholder trims value and returns Placeholder when nothing is left.
func CellOrPlaceholder(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return Placeholder
}
