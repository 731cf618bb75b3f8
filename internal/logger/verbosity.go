package logger

import "go.uber.org/zap/zapcore"

// Verbosity levels for repeated -v flags.
//
//	0 (none) -> InfoLevel   progress, summaries, warnings
//	1 (-v)   -> DebugLevel  per-record diagnostics
//	-1 (-q)  -> WarnLevel   warnings and errors only
const (
	VerbosityQuiet = -1
	VerbosityInfo  = 0
	VerbosityDebug = 1
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
