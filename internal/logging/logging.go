// Package logging builds the zerolog logger shared by the commands,
// the repository and the seed loader.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the level and encoding of log output.
type Options struct {
	Level  string // zerolog level name; empty means warn
	Format string // "json" or "console" (default)
	Quiet  bool   // only errors
}

// New returns a logger writing to w. An unknown level falls back to warn.
func New(opts Options, w io.Writer) zerolog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Quiet && level < zerolog.ErrorLevel {
		level = zerolog.ErrorLevel
	}

	out := w
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init builds a logger with New and installs it as the global log.Logger.
func Init(opts Options, w io.Writer) zerolog.Logger {
	l := New(opts, w)
	log.Logger = l
	return l
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
