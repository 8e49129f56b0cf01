package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Entry is one collected warning or error.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

// String renders the entry as "message key=value ...".
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, a := range e.Attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	return b.String()
}

// Collector is a slog.Handler that keeps every WARN and ERROR record so a
// run can end with a summary of non-fatal problems.
type Collector struct {
	mu      *sync.Mutex
	entries *[]Entry
	attrs   []slog.Attr
	group   string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (c *Collector) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn
}

// nolint:gocritic // r must be passed by value to implement slog.Handler
func (c *Collector) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Message: r.Message}
	for _, a := range c.attrs {
		if a.Key != "run" {
			e.Attrs = append(e.Attrs, a)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if c.group != "" {
			a.Key = c.group + "." + a.Key
		}
		e.Attrs = append(e.Attrs, a)
		return true
	})

	c.mu.Lock()
	*c.entries = append(*c.entries, e)
	c.mu.Unlock()
	return nil
}

func (c *Collector) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *c
	n.attrs = append(append([]slog.Attr(nil), c.attrs...), attrs...)
	return &n
}

func (c *Collector) WithGroup(name string) slog.Handler {
	n := *c
	if n.group != "" {
		name = n.group + "." + name
	}
	n.group = name
	return &n
}

// Entries returns a copy of everything collected so far.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), *c.entries...)
}

// Summary writes the collected entries as an itemised list.
func (c *Collector) Summary() string {
	entries := c.Entries()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d warning(s) during run:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "  - [%s] %s\n", e.Level, e)
	}
	return b.String()
}
