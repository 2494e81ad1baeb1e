// Package logger builds the zerolog logger shared by the server.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type LogBuild struct {
	writer io.Writer
	level  zerolog.Level
	format string
}

func New() *LogBuild {
	return &LogBuild{
		writer: os.Stdout,
		level:  zerolog.InfoLevel,
		format: FormatJSON,
	}
}

// FromBuffer sends output to w instead of stdout.
func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// WithLevel parses level ("debug", "info", ...). Unknown levels keep the default.
func (build *LogBuild) WithLevel(level string) *LogBuild {
	if lvl, err := zerolog.ParseLevel(level); err == nil && lvl != zerolog.NoLevel {
		build.level = lvl
	}
	return build
}

func (build *LogBuild) WithFormat(format string) *LogBuild {
	build.format = format
	return build
}

func (build *LogBuild) Make() zerolog.Logger {
	w := build.writer
	if build.format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: build.writer, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(build.level).With().Timestamp().Logger()
}
