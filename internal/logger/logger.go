// Package logger provides prefixed charmbracelet/log loggers for the
// plenum command-line tools.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger with the default options and the given prefix.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
