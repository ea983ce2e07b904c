// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package log provides the severities and prefixed-message convention used
// throughout the engine: trace, debug, info, warning, error and fatal.
//
// It writes through the standard library's log.Logger rather than a
// third-party structured-logging library - none of the packages in the
// retrieval pack this module was grounded on pull in one, and the engine's
// own messages are already simple "prefix: reason" strings, so adding a
// structured backend would buy nothing a caller couldn't get from parsing
// the prefix.
package log

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Severity is the level of a log message.
type Severity int

// Severities, in increasing order of importance.
const (
	Trace Severity = iota
	Debug
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "?"
	}
}

// level is the minimum severity that gets written out.
// It defaults to Info.
var level atomic.Int32

func init() { level.Store(int32(Info)) }

// SetLevel changes the minimum severity written by subsequent calls.
func SetLevel(s Severity) { level.Store(int32(s)) }

// exitFunc is called by Fatalf after the message is written.
// Tests replace it to avoid killing the process.
var exitFunc = os.Exit

func logf(s Severity, prefix, format string, args ...any) {
	if int32(s) < level.Load() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	log.Printf("[%s] %s", s, msg)
}

// Tracef logs a trace-level message.
func Tracef(prefix, format string, args ...any) { logf(Trace, prefix, format, args...) }

// Debugf logs a debug-level message.
func Debugf(prefix, format string, args ...any) { logf(Debug, prefix, format, args...) }

// Infof logs an info-level message.
func Infof(prefix, format string, args ...any) { logf(Info, prefix, format, args...) }

// Warnf logs a warning-level message.
func Warnf(prefix, format string, args ...any) { logf(Warning, prefix, format, args...) }

// Errorf logs an error-level message.
func Errorf(prefix, format string, args ...any) { logf(Error, prefix, format, args...) }

// Fatalf logs a fatal-level message and terminates the process with a
// non-zero exit code, per the propagation policy for DeviceError-class
// failures.
func Fatalf(prefix, format string, args ...any) {
	logf(Fatal, prefix, format, args...)
	exitFunc(1)
}
