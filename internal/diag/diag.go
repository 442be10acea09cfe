// Package diag implements the single diagnostic environment variable that
// selects verbosity: silent, informational, or verbose command-echo. The
// truthy-parsing helper mirrors the pattern used elsewhere in this codebase
// for boolean-ish environment variables, generalized from two booleans into
// one three-level enum.
package diag

import (
	"log/slog"
	"os"
	"strings"
)

// Level is the diagnostic verbosity level.
type Level int

const (
	Silent Level = iota
	Info
	Verbose
)

// EnvVar is the name of the single diagnostic environment variable.
const EnvVar = "CC_AUTOCHECK_VERBOSITY"

// CurrentLevel resolves the configured verbosity from the environment.
// Unrecognized or unset values default to Silent.
func CurrentLevel() Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
	case "info", "informational":
		return Info
	case "verbose":
		return Verbose
	default:
		return Silent
	}
}

// Logger returns a slog.Logger writing to stderr at a level derived from
// CurrentLevel: Silent maps to slog.LevelWarn (errors and warnings only),
// Info to slog.LevelInfo, Verbose to slog.LevelDebug.
func Logger() *slog.Logger {
	var handlerLevel slog.Level
	switch CurrentLevel() {
	case Verbose:
		handlerLevel = slog.LevelDebug
	case Info:
		handlerLevel = slog.LevelInfo
	default:
		handlerLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: handlerLevel}))
}
