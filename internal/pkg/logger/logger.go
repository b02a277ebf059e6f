// Package logger provides the leveled logger the services write through.
package logger

import (
	"log"
	"os"
)

// StdLogger writes prefixed, leveled lines to stderr. Debug, Info, and Warn
// are silenced unless verbose is set; errors are always reported.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(os.Stderr, "nlsh ", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.out.Println("[DEBUG]", msg, fields)
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.out.Println("[INFO]", msg, fields)
	}
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if l.verbose {
		l.out.Println("[WARN]", msg, fields)
	}
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, fields)
}
