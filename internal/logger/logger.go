// Package logger provides the small leveled logger the services share.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	levelSilent
)

// ParseLevel maps a LOG_LEVEL string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the logging surface the services depend on.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

type leveledLogger struct {
	debug *log.Logger
	info  *log.Logger
	err   *log.Logger
}

// New builds a Logger writing to stderr. Messages below level are dropped.
func New(level Level) Logger {
	sink := func(min Level, prefix string) *log.Logger {
		w := io.Writer(os.Stderr)
		if level > min {
			w = io.Discard
		}
		return log.New(w, prefix, log.LstdFlags|log.Lmsgprefix)
	}
	return &leveledLogger{
		debug: sink(LevelDebug, "DEBUG "),
		info:  sink(LevelInfo, "INFO "),
		err:   sink(LevelError, "ERROR "),
	}
}

// Nop returns a Logger that discards everything. Used by tests.
func Nop() Logger {
	return New(levelSilent)
}

func (l *leveledLogger) Debug(v ...interface{})                 { l.debug.Println(v...) }
func (l *leveledLogger) Debugf(format string, v ...interface{}) { l.debug.Printf(format, v...) }
func (l *leveledLogger) Info(v ...interface{})                  { l.info.Println(v...) }
func (l *leveledLogger) Infof(format string, v ...interface{})  { l.info.Printf(format, v...) }
func (l *leveledLogger) Error(v ...interface{})                 { l.err.Println(v...) }
func (l *leveledLogger) Errorf(format string, v ...interface{}) { l.err.Printf(format, v...) }
