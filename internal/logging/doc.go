// Package logging assembles the structured slog loggers used across the
// pipeline.
//
// It owns the console/JSON handler setup, centralizes level parsing, and
// exposes context-aware helpers so pipeline code automatically tags log lines
// with asset ids, stages, and correlation ids. A no-op logger is available for
// tests and wiring code that cannot fail.
package logging
