// Package logging builds the slog loggers used by the converter.
//
// Console output is a compact single-line format with the level label
// coloured when writing to a terminal; JSON output is meant for scripts that
// post-process a batch run. NewNop returns a logger that drops everything,
// which is what tests and optional collaborators fall back to.
package logging
