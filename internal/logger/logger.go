// Package logger owns the process-wide zap logger used by the command-line
// tools. Library packages never reach for the global; they take a
// *zap.SugaredLogger from ComponentLogger (or nil, see OrNop).
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names so log lines from different tools line up.
const (
	FieldComponent = "component"
	FieldTable     = "table"
	FieldFile      = "file"
	FieldLine      = "line"
	FieldCount     = "count"
	FieldTaxonID   = "taxon_id"
	FieldEntryID   = "entry_id"
	FieldError     = "error"
	FieldDuration  = "duration"
)

// Logger is the global logger. It is a no-op until Initialize runs.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Options selects encoding, verbosity and destination.
type Options struct {
	Verbosity int       // -v count, see VerbosityToLevel
	JSON      bool      // JSON lines instead of console text
	Output    io.Writer // defaults to os.Stderr
}

// Initialize replaces the global logger and returns it.
func Initialize(o Options) *zap.SugaredLogger {
	Logger = New(o)
	return Logger
}

// New builds a logger without touching the global.
func New(o Options) *zap.SugaredLogger {
	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if o.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05")
		cfg.CallerKey = ""
		cfg.StacktraceKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), VerbosityToLevel(o.Verbosity))
	return zap.New(core).Sugar()
}

// ComponentLogger returns a named child of the global logger.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

// Sync flushes the global logger. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
