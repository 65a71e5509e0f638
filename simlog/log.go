// Package simlog provides the process-wide log sink used by the run loop
// (cmd/picsim), kept deliberately small: a single writable
// destination plus formatted and structured helpers.
package simlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	writer io.Writer = os.Stdout
	logger           = slog.New(slog.NewTextHandler(os.Stdout, nil))
)

// SetOutput redirects both Logf and the structured logger to w.
func SetOutput(w io.Writer) {
	writer = w
	logger = slog.New(slog.NewTextHandler(w, nil))
}

// Logf writes a plain formatted progress line.
func Logf(format string, args ...interface{}) {
	fmt.Fprintln(writer, fmt.Sprintf(format, args...))
}

// Step logs a structured per-iteration record.
func Step(iter int, simTime, dt float64, fields ...any) {
	args := append([]any{"iter", iter, "time", simTime, "dt", dt}, fields...)
	logger.Info("step", args...)
}

// Warn logs a structured warning for recoverable conditions.
func Warn(msg string, fields ...any) {
	logger.Warn(msg, fields...)
}

// Error logs a structured error, used when a step aborts.
func Error(msg string, err error, fields ...any) {
	args := append([]any{"error", err}, fields...)
	logger.Error(msg, args...)
}
