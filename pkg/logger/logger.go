package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for registry and encoder internals.
	DebugLevel              // DebugLevel is used for debugging information.
	InfoLevel               // InfoLevel is used for informational messages.
	WarnLevel               // WarnLevel is used for recoverable problems.
	ErrorLevel              // ErrorLevel is used for failed requests and operations.
	NoLevel                 // NoLevel is used for no logging level.
)

// Logger is the logging contract used across the module. Library packages
// default to Nop so that nothing is written unless a caller opts in.
type Logger interface {
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger with the given error.

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	SetLevel(level Level) // SetLevel sets the logging level for the logger.
	GetLevel() Level      // GetLevel returns the logging level for the logger.
}

// ParseLevel converts a textual level name into a Level.
func ParseLevel(name string) (Level, bool) {
	levels := map[string]Level{
		"disabled": Disabled,
		"trace":    TraceLevel,
		"debug":    DebugLevel,
		"info":     InfoLevel,
		"warn":     WarnLevel,
		"error":    ErrorLevel,
	}

	level, ok := levels[name]
	return level, ok
}
