// Package logging sets up the zap logger used by the command and handed to
// the library packages.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldPackage   = "package"
	FieldRecord    = "record"
	FieldFile      = "file"
	FieldCount     = "count"
	FieldError     = "error"
)

// Logger is the process-wide logger. It discards output until Initialize
// is called.
var Logger = zap.NewNop().Sugar()

// Verbosity levels for the -v flag count.
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // -v: one line per record and file
	VerbosityDebug = 2 // -vv: loader and template details
)

// VerbosityToLevel maps a -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Initialize replaces Logger with one writing to stderr.
func Initialize(verbosity int, jsonOutput bool) {
	Logger = New(os.Stderr, verbosity, jsonOutput)
}

// New builds a logger writing to w. Console output is the default; the JSON
// encoder is meant for machine consumption in CI.
func New(w io.Writer, verbosity int, jsonOutput bool) *zap.SugaredLogger {
	var encoder zapcore.Encoder

	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), VerbosityToLevel(verbosity))

	return zap.New(core).Sugar()
}

// Component returns a named child of Logger tagged with the component name.
func Component(name string) *zap.SugaredLogger {
	return Logger.Named(name).With(FieldComponent, name)
}

// Sync flushes buffered output. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
