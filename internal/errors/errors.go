// Package errors formats user-facing CLI errors. The Fatal helpers log
// through the app logger before exiting so failures land in the log file too.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/backtrack/internal/logger"
)

// Format renders err with the "Error: " prefix used on stderr. Nil errors
// render as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf is Format for a format string.
func Formatf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal logs err, prints it to stderr, and exits with code 1. A nil err is a
// no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a format string.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
