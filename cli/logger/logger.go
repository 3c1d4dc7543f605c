// Package logger builds the application [slog.Logger] from user options.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configure [New]. Logs go to stderr by default so they never
// interleave with the shell output on stdout.
type Options struct {
	Level  string `doc:"log from debug, info, warn or error"`
	File   string `doc:"append logs to file"`
	Format string `doc:"format logs as text or json"         default:"text"`
}

type handlerFunc func(io.Writer, *slog.HandlerOptions) slog.Handler

//nolint: gochecknoglobals // read-only lookup table
var handlers = map[string]handlerFunc{
	"":     textHandler,
	"text": textHandler,
	"json": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, opts) },
}

func textHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, opts) }

// fallback is an option that was reset to its default.
type fallback struct {
	msg  string
	args []any
}

// New builds a logger from options. Options that cannot be honored are reset
// to their default and reported as warnings through the resulting logger.
func New(options *Options) *slog.Logger {
	return newLogger(options, os.Stderr)
}

func newLogger(options *Options, stderr io.Writer) *slog.Logger {
	if options.File == os.DevNull {
		return slog.New(slog.DiscardHandler)
	}

	var fallbacks []fallback
	opts := &slog.HandlerOptions{}
	if options.Level != "" {
		var lvl slog.Level
		err := lvl.UnmarshalText([]byte(options.Level))
		if err != nil {
			fallbacks = append(fallbacks, fallback{"could not parse logger level", []any{"level", options.Level}})
			options.Level = ""
		} else {
			opts.Level = lvl
		}
	}

	handler, ok := handlers[strings.ToLower(options.Format)]
	if !ok {
		fallbacks = append(fallbacks, fallback{"could not parse logger format", []any{"format", options.Format}})
		options.Format = "text"
		handler = textHandler
	}

	output := stderr
	if options.File != "" && options.File != "-" {
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			fallbacks = append(fallbacks, fallback{"could not open logger file", []any{"err", err}})
			options.File = ""
		} else {
			output = f
		}
	}

	logger := slog.New(handler(output, opts))
	for _, fb := range fallbacks {
		logger.Warn(fb.msg, fb.args...)
	}
	return logger
}
