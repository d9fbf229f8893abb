// Package logging assembles structured slog loggers and formatting helpers
// used across boardhook components.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context helpers so dispatch code can tag log lines with a
// correlation identifier. A no-op logger is provided for tests and wiring
// code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
