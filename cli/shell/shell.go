// Package shell drives an address book from line-oriented commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/Koster99/personal-asistant/datastores"
	"github.com/Koster99/personal-asistant/views"
)

// Shell reads commands one per line and applies them to Book.
// Arguments are separated by whitespace.
type Shell struct {
	Book *datastores.AddressBook
	View views.Renderer

	// Store is the file used by save and load without argument.
	Store string
	// Autosave saves Book to Store when the input ends or on exit.
	Autosave bool

	// Prompt is written before each line is read when not nil.
	Prompt io.Writer
	Logger *slog.Logger
	// Metrics receives command counters and durations when not nil.
	Metrics *metrics.Set
	// Now defaults to [time.Now].
	Now func() time.Time

	// mu serializes commands with SaveBook.
	mu sync.Mutex
}

const prompt = "> "

// Run processes lines from in until exit, the end of in, or ctx is done.
// Command failures are rendered and never stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if s.Metrics != nil {
		s.Metrics.GetOrCreateGauge("addressbook_contacts", func() float64 { return float64(s.Book.Len()) })
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Prompt != nil {
			fmt.Fprint(s.Prompt, prompt)
		}
		if !scanner.Scan() {
			break
		}
		if errors.Is(s.Exec(ctx, scanner.Text()), errExit) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("shell: read input: %w", err)
	}

	if s.Autosave {
		return s.SaveBook(ctx)
	}
	return nil
}

// SaveBook saves Book to Store once no command is running, so that it is
// safe to call from another goroutine while Run is in progress.
func (s *Shell) SaveBook(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.Book.SaveFile(s.Store)
	if err != nil {
		s.logger().ErrorContext(ctx, "could not save address book", "file", s.Store, "err", err)
		return err
	}
	s.logger().InfoContext(ctx, "address book saved", "file", s.Store, "contacts", s.Book.Len())
	return nil
}

// Exec runs a single command line. It returns the command error after
// rendering it, so that callers may react to failures.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := s.lookup(name)
	if !ok {
		s.View.RenderMessage(fmt.Sprintf("Unknown command %q, type help for the list of commands.", fields[0]))
		s.meter("unknown", "error", time.Now())
		return nil
	}

	start := time.Now()
	var err error
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		err = fmt.Errorf("%w: %s", errUsage, cmd.usage)
	} else {
		s.mu.Lock()
		err = cmd.run(ctx, args)
		s.mu.Unlock()
	}

	status := "ok"
	level := slog.LevelDebug
	switch {
	case err == nil:
	case errors.Is(err, errExit):
		status = "exit"
	case errors.Is(err, errUsage), errors.Is(err, datastores.ErrValidationRejected), errors.Is(err, datastores.ErrPhoneMismatch):
		status, level = "rejected", slog.LevelWarn
		s.View.RenderMessage(err.Error())
	default:
		status, level = "error", slog.LevelError
		s.View.RenderMessage(err.Error())
	}
	s.meter(cmd.name, status, start)

	attrs := []slog.Attr{slog.Int("args", len(args)), slog.String("status", status), slog.Duration("dur", time.Since(start))}
	if err != nil && status != "exit" {
		attrs = append(attrs, slog.Any("err", err))
	}
	s.logger().LogAttrs(ctx, level, cmd.name, attrs...)
	return err
}

//nolint: gochecknoglobals // arbitrary, shared by all shells
var buckets = metrics.ExponentialBuckets(1e-5, 5, 8)

func (s *Shell) meter(name, status string, start time.Time) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.GetOrCreateCounter(joinQuote("addressbook_commands_total{command=", name, ",status=", status, "}")).Inc()
	s.Metrics.GetOrCreatePrometheusHistogramExt(joinQuote("addressbook_command_duration_seconds{command=", name, "}"), buckets).UpdateDuration(start)
}

func (s *Shell) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Shell) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }
