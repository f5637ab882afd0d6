package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config controls how New builds the logger.
type Config struct {
	Level          string    // zerolog level name, e.g. "info"
	DateTimeLayout string    // layout used by the console writer
	Colored        bool      // colourise console output
	JSON           bool      // emit raw JSON lines instead of console output
	Out            io.Writer // defaults to os.Stdout
}

// New creates a zerolog backed logger.Logger.
func New(config Config) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	out := config.Out
	if out == nil {
		out = os.Stdout
	}

	layout := config.DateTimeLayout
	if layout == "" {
		layout = time.DateTime
	}

	if !config.JSON {
		out = zerolog.ConsoleWriter{
			Out:             out,
			NoColor:         !config.Colored,
			TimeFormat:      layout,
			FormatLevel:     formatLevel,
			FormatMessage:   formatMessage,
			FormatCaller:    formatCaller,
			FormatTimestamp: func(i any) string { return formatTimestamp(i, layout) },
		}
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return NewAdapter(&log), nil
}

func formatLevel(i any) string {
	level, ok := i.(string)
	if !ok {
		return "UNKNOWN"
	}

	switch level {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	default:
		return term.Whitef("[UNK]")
	}
}

func formatMessage(i any) string {
	const maxSize = 60

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}

	if len(msg) > maxSize {
		msg = msg[:maxSize]
	}

	return term.Whitef("> %-*s", maxSize, msg)
}

func formatCaller(i any) string {
	const maxFileSize = 16

	name, ok := i.(string)
	if !ok || len(name) == 0 {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(name), ":")
	if !found {
		return file
	}

	if len(file) > maxFileSize {
		file = file[:maxFileSize]
	}

	return term.Yellowf("[%-*s:%4s]", maxFileSize, file, line)
}

func formatTimestamp(i any, layout string) string {
	value, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.Parse(zerolog.TimeFieldFormat, value); err == nil {
		value = ts.In(time.Local).Format(layout)
	}

	return term.Cyanf("[%s]", value)
}
