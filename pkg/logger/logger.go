// Package logger provides a colorized slog handler for terminal output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var writerStderr io.Writer = os.Stderr

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// ColorHandler is a slog.Handler that colorizes output by level.
type ColorHandler struct {
	opts  slog.HandlerOptions
	attrs []slog.Attr
	group string

	mu  *sync.Mutex
	out io.Writer
}

// NewColorHandler creates a handler writing colorized lines to out.
func NewColorHandler(out io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	h := &ColorHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// NewDefaultLogger creates a slog.Logger with a ColorHandler at the given
// level writing to stderr.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(writerStderr, &slog.HandlerOptions{Level: level}))
}

// Enabled implements slog.Handler.
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	color := levelColor(r.Level, r.Message)

	var b strings.Builder
	b.WriteString(colorGray)
	b.WriteString(r.Time.Format(time.RFC3339))
	b.WriteString(colorReset)
	b.WriteByte(' ')
	b.WriteString(color)
	b.WriteString(r.Level.String())
	b.WriteString(colorReset)
	b.WriteByte(' ')
	if h.group != "" {
		b.WriteString(h.group)
		b.WriteByte('.')
	}
	b.WriteString(color)
	b.WriteString(r.Message)
	b.WriteString(colorReset)

	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	fmt.Fprintf(b, " %s%s=%s%v", colorCyan, a.Key, colorReset, a.Value)
}

// levelColor picks the line color: errors red, warnings yellow, progress
// messages green, everything else plain.
func levelColor(level slog.Level, message string) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case strings.Contains(strings.ToLower(message), "persist"),
		strings.Contains(strings.ToLower(message), "complete"):
		return colorGreen
	}
	return colorReset
}
