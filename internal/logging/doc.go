// Package logging builds the session logger written to stderr.
//
// Three formats are available: the standard slog text and JSON handlers, and
// a compact single-line format with a colored level and JSON attributes that
// reads well next to the interactive chat.
package logging
