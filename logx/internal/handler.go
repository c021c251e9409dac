// Package internal provides the record formatting behind logx.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Options configures the handler.
type Options struct {
	Format           string     // logfmt or json
	Level            slog.Level // Minimum log level
	Color            bool       // Colorize the level value (logfmt only)
	DisableTimestamp bool
}

// Handler writes records as logfmt or JSON with fields sorted by key.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	writer io.Writer
	attrs  []slog.Attr
}

// NewHandler creates a Handler writing to w.
func NewHandler(opts Options, w io.Writer) *Handler {
	return &Handler{
		opts:   opts,
		mu:     &sync.Mutex{},
		writer: w,
	}
}

// LogRecord writes one record. Records below the configured level are dropped.
func (h *Handler) LogRecord(level slog.Level, msg string, attrs []slog.Attr) {
	if level < h.opts.Level {
		return
	}

	all := append([]slog.Attr{}, h.attrs...)
	all = append(all, attrs...)
	all = SortAttrs(all)

	var line string
	if h.opts.Format == "json" {
		line = h.formatJSON(level, msg, all)
	} else {
		line = h.formatLogfmt(level, msg, all)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = io.WriteString(h.writer, line)
}

func (h *Handler) formatLogfmt(level slog.Level, msg string, attrs []slog.Attr) string {
	var buf strings.Builder

	if !h.opts.DisableTimestamp {
		buf.WriteString("time=")
		buf.WriteString(time.Now().Format(time.RFC3339))
		buf.WriteString(" ")
	}

	levelStr := LevelString(level)
	buf.WriteString("level=")
	if h.opts.Color {
		buf.WriteString(ColorizeLevel(levelStr))
	} else {
		buf.WriteString(levelStr)
	}

	buf.WriteString(" msg=")
	buf.WriteString(fmt.Sprintf("%q", msg))

	for _, attr := range attrs {
		buf.WriteString(" ")
		buf.WriteString(attr.Key)
		buf.WriteString("=")
		buf.WriteString(FormatValue(attr.Value))
	}
	buf.WriteString("\n")
	return buf.String()
}

func (h *Handler) formatJSON(level slog.Level, msg string, attrs []slog.Attr) string {
	record := make(map[string]any, len(attrs)+3)
	if !h.opts.DisableTimestamp {
		record["time"] = time.Now().Format(time.RFC3339)
	}
	record["level"] = LevelString(level)
	record["msg"] = msg
	for _, attr := range attrs {
		value := attr.Value.Resolve().Any()
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		record[attr.Key] = value
	}

	// encoding/json sorts map keys, which keeps output stable.
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf("{\"level\":\"ERROR\",\"msg\":%q}\n", "log encode failed: "+err.Error())
	}
	return string(data) + "\n"
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	h.LogRecord(r.Level, r.Message, attrs)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append([]slog.Attr{}, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{opts: h.opts, mu: h.mu, writer: h.writer, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// KVToAttrs converts key-value pairs to attributes.
// Two-element []any pairs (as built by log.Str and friends) are expanded.
func KVToAttrs(kv []any) []slog.Attr {
	flat := make([]any, 0, len(kv))
	for _, item := range kv {
		if pair, ok := item.([]any); ok && len(pair) == 2 {
			flat = append(flat, pair[0], pair[1])
			continue
		}
		flat = append(flat, item)
	}

	attrs := make([]slog.Attr, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		attrs = append(attrs, slog.Any(fmt.Sprintf("%v", flat[i]), flat[i+1]))
	}
	return attrs
}

// SortAttrs returns a copy of attrs sorted by key.
func SortAttrs(attrs []slog.Attr) []slog.Attr {
	sorted := make([]slog.Attr, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// FormatValue formats a value for logfmt output. Strings are always quoted.
func FormatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return fmt.Sprintf("%q", v.String())
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case slog.KindFloat64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v.Float64()), "0"), ".")
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return fmt.Sprintf("%d", v.Duration().Milliseconds())
	case slog.KindTime:
		return fmt.Sprintf("%q", v.Time().Format(time.RFC3339))
	default:
		return fmt.Sprintf("%q", fmt.Sprint(v.Any()))
	}
}

// LevelString returns the upper-case name of a level.
func LevelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// ColorizeLevel wraps a level name in ANSI colour codes.
func ColorizeLevel(level string) string {
	const (
		reset   = "\033[0m"
		red     = "\033[31m"
		yellow  = "\033[33m"
		cyan    = "\033[36m"
		magenta = "\033[35m"
	)

	switch level {
	case "DEBUG":
		return magenta + level + reset
	case "INFO":
		return cyan + level + reset
	case "WARN":
		return yellow + level + reset
	case "ERROR":
		return red + level + reset
	default:
		return level
	}
}
