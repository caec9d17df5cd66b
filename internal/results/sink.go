// Package results provides the append-only, line-oriented results feed.
//
// Components that report status (zoom level, pixel values, analysis output)
// receive a Sink by injection instead of reaching for a shared surface.
package results

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Sink receives human-readable status lines. Lines are never rewritten or
// removed once posted.
type Sink interface {
	Post(line string)
}

// Postf formats a line and posts it to s. A nil sink discards the line.
func Postf(s Sink, format string, args ...any) {
	if s == nil {
		return
	}
	s.Post(fmt.Sprintf(format, args...))
}

// Feed keeps every posted line in memory and optionally mirrors it to a writer.
//
// Feed is safe for concurrent use.
type Feed struct {
	mu    sync.Mutex
	lines []string
	out   io.Writer
}

// NewFeed creates a feed. If out is non-nil each line is also written to it,
// terminated by a newline.
func NewFeed(out io.Writer) *Feed {
	return &Feed{out: out}
}

// Post appends a line. Embedded newlines are folded into spaces so that the
// feed stays one entry per line.
func (f *Feed) Post(line string) {
	line = strings.ReplaceAll(strings.TrimRight(line, "\r\n"), "\n", " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, line)
	if f.out != nil {
		if _, err := io.WriteString(f.out, line+"\n"); err != nil {
			slog.Warn("failed to mirror results line", "err", err)
		}
	}
}

// Lines returns a copy of all lines posted so far, oldest first.
func (f *Feed) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

// Since returns the lines posted after the first n, for incremental readers.
func (f *Feed) Since(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n >= len(f.lines) {
		return nil
	}
	out := make([]string, len(f.lines)-n)
	copy(out, f.lines[n:])
	return out
}

// Len reports how many lines have been posted.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Post(string) {}
