package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

var (
	currentLevel = ERROR
	nullWriter   = &NullWriter{}
	Info         *log.Logger
	Warn         *log.Logger
	Error        *log.Logger
	Debug        *log.Logger
	Trace        *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

type NullWriter struct {
	io.Writer
}

func (s *NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Loggers discard everything until Initialize is called so that library
// code and tests can log freely.
func init() {
	setWriters(nullWriter, nullWriter, nullWriter, nullWriter, nullWriter)
}

// Initialize enables the loggers up to the given level. Everything goes to
// stderr because stdout belongs to the console views.
func Initialize(logLevel LogLevel) {
	InitializeWithWriter(logLevel, os.Stderr)
}

func InitializeWithWriter(logLevel LogLevel, out io.Writer) {
	var errorWriter io.Writer = nullWriter
	var warnWriter io.Writer = nullWriter
	var infoWriter io.Writer = nullWriter
	var debugWriter io.Writer = nullWriter
	var traceWriter io.Writer = nullWriter
	if logLevel >= ERROR {
		errorWriter = out
	}
	if logLevel >= WARN {
		warnWriter = out
	}
	if logLevel >= INFO {
		infoWriter = out
	}
	if logLevel >= DEBUG {
		debugWriter = out
	}
	if logLevel >= TRACE {
		traceWriter = out
	}
	currentLevel = logLevel
	setWriters(errorWriter, warnWriter, infoWriter, debugWriter, traceWriter)
	Debug.Printf("Loggers initialized: '%s'", logLevel.String())
}

func setWriters(errorWriter, warnWriter, infoWriter, debugWriter, traceWriter io.Writer) {
	Error = log.New(errorWriter, "ERROR: ", logFlags)
	Warn = log.New(warnWriter, "WARN:  ", logFlags)
	Info = log.New(infoWriter, "INFO:  ", logFlags)
	Debug = log.New(debugWriter, "DEBUG: ", logFlags)
	Trace = log.New(traceWriter, "TRACE: ", logFlags)
}

// IsLogLevel tells if messages of the given level are written. Use it to skip
// building expensive log arguments.
func IsLogLevel(logLevel LogLevel) bool {
	return currentLevel >= logLevel
}
