// Package logger is a small leveled wrapper over the standard logger.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	verbose     bool
}

// New writes to w. Debug messages are dropped unless verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		infoLogger:  log.New(w, "INFO: ", flags),
		errorLogger: log.New(w, "ERROR: ", flags),
		debugLogger: log.New(w, "DEBUG: ", flags),
		verbose:     verbose,
	}
}

// Default logs to stderr.
func Default(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// Discard drops everything; used by tests.
func Discard() *Logger {
	return New(io.Discard, false)
}

func (l *Logger) Info(format string, v ...any) {
	l.infoLogger.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...any) {
	l.errorLogger.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...any) {
	if !l.verbose {
		return
	}
	l.debugLogger.Output(2, fmt.Sprintf(format, v...))
}

func (l *Logger) Verbose() bool {
	return l.verbose
}
