// Copyright 2023 embedio. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"io"
	"log"
	"os"
)

// Level is a log priority.
type Level int

const (
	// LevelAll enables all logs.
	LevelAll Level = iota
	// LevelDebug logs are usually disabled in production.
	LevelDebug
	// LevelInfo is the default logging priority.
	LevelInfo
	// LevelWarn .
	LevelWarn
	// LevelError .
	LevelError
	// LevelNone disables all logs.
	LevelNone
)

var tags = map[Level]string{
	LevelDebug: "[DBG] ",
	LevelInfo:  "[INF] ",
	LevelWarn:  "[WRN] ",
	LevelError: "[ERR] ",
}

// Logger defines the log interface.
type Logger interface {
	SetLevel(lvl Level)
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DefaultLogger is the default logger.
var DefaultLogger Logger = &stdLogger{
	level: LevelInfo,
	out:   log.New(os.Stderr, "", log.LstdFlags),
}

// SetLogger sets the default logger.
func SetLogger(l Logger) {
	DefaultLogger = l
}

// SetLevel sets the default logger's priority.
func SetLevel(lvl Level) {
	DefaultLogger.SetLevel(lvl)
}

// SetOutput redirects the default logger's output.
func SetOutput(w io.Writer) {
	if l, ok := DefaultLogger.(*stdLogger); ok {
		l.out.SetOutput(w)
	}
}

// stdLogger implements Logger on top of the standard log package.
type stdLogger struct {
	level Level
	out   *log.Logger
}

// SetLevel sets log priority.
func (l *stdLogger) SetLevel(lvl Level) {
	if lvl < LevelAll || lvl > LevelNone {
		l.out.Printf("invalid log level: %v", lvl)
		return
	}
	l.level = lvl
}

func (l *stdLogger) logf(lvl Level, format string, v ...interface{}) {
	if lvl >= l.level {
		l.out.Printf(tags[lvl]+format, v...)
	}
}

// Debug logs a message at LevelDebug.
func (l *stdLogger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, format, v...)
}

// Info logs a message at LevelInfo.
func (l *stdLogger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, format, v...)
}

// Warn logs a message at LevelWarn.
func (l *stdLogger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, format, v...)
}

// Error logs a message at LevelError.
func (l *stdLogger) Error(format string, v ...interface{}) {
	l.logf(LevelError, format, v...)
}

// Debug uses DefaultLogger to log a message at LevelDebug.
func Debug(format string, v ...interface{}) {
	if DefaultLogger != nil {
		DefaultLogger.Debug(format, v...)
	}
}

// Info uses DefaultLogger to log a message at LevelInfo.
func Info(format string, v ...interface{}) {
	if DefaultLogger != nil {
		DefaultLogger.Info(format, v...)
	}
}

// Warn uses DefaultLogger to log a message at LevelWarn.
func Warn(format string, v ...interface{}) {
	if DefaultLogger != nil {
		DefaultLogger.Warn(format, v...)
	}
}

// Error uses DefaultLogger to log a message at LevelError.
func Error(format string, v ...interface{}) {
	if DefaultLogger != nil {
		DefaultLogger.Error(format, v...)
	}
}
