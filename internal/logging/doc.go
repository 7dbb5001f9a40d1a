// Package logging assembles structured slog loggers and formatting helpers used
// across the importer.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and tees console output into a JSON log file when a log directory
// is configured. Helpers such as WarnWithContext keep warning lines shaped the
// same way everywhere (cause, impact, next step). The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
