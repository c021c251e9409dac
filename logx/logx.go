// Package logx provides the slog-based implementation of core/log.Logger.
//
// Overview:
//   - Responsibility: Structured logging for the genex CLI in logfmt or JSON
//   - Key Types: Logger, Options, Option
//   - Concurrency Model: Loggers are safe for concurrent use
//   - Error Semantics: Write failures are dropped
//   - Performance Notes: Fields are sorted once per record
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatJSON), logx.WithLevel(slog.LevelDebug))
//	logger.Info("descriptor merged", logx.Str("path", "pom.xml"))
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.eggybyte.com/genex/core/log"
	"go.eggybyte.com/genex/logx/internal"
)

// Format specifies the output format.
type Format string

const (
	// FormatLogfmt writes key=value pairs.
	FormatLogfmt Format = "logfmt"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Format           Format
	Level            slog.Level
	Color            bool
	Writer           io.Writer // default: os.Stderr
	DisableTimestamp bool
}

// Option mutates Options.
type Option func(*Options)

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(o *Options) { o.Format = format }
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithColor colorizes the level field.
func WithColor(enabled bool) Option {
	return func(o *Options) { o.Color = enabled }
}

// WithWriter sets the destination writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// WithTimestamp enables or disables the time field.
func WithTimestamp(enabled bool) Option {
	return func(o *Options) { o.DisableTimestamp = !enabled }
}

// Logger implements log.Logger.
type Logger struct {
	handler *internal.Handler
	attrs   []slog.Attr
}

// New creates a Logger. Defaults: logfmt, info level, stderr, no timestamp.
func New(opts ...Option) log.Logger {
	options := Options{
		Format:           FormatLogfmt,
		Level:            slog.LevelInfo,
		Writer:           os.Stderr,
		DisableTimestamp: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	handler := internal.NewHandler(internal.Options{
		Format:           string(options.Format),
		Level:            options.Level,
		Color:            options.Color,
		DisableTimestamp: options.DisableTimestamp,
	}, options.Writer)

	return &Logger{handler: handler}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLogfmt, FormatJSON:
		return f, nil
	case "":
		return FormatLogfmt, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want logfmt or json)", s)
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Str creates a string key-value pair.
func Str(k, v string) any { return log.Str(k, v) }

// Int creates an integer key-value pair.
func Int(k string, v int) any { return log.Int(k, v) }

// With returns a Logger carrying kv on every record.
func (l *Logger) With(kv ...any) log.Logger {
	attrs := append([]slog.Attr{}, l.attrs...)
	attrs = append(attrs, internal.KVToAttrs(kv)...)
	return &Logger{handler: l.handler, attrs: attrs}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(slog.LevelDebug, msg, internal.KVToAttrs(kv))
}

// Info logs at info level.
func (l *Logger) Info(msg string, kv ...any) {
	l.log(slog.LevelInfo, msg, internal.KVToAttrs(kv))
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, kv ...any) {
	l.log(slog.LevelWarn, msg, internal.KVToAttrs(kv))
}

// Error logs at error level with err under the "error" key.
func (l *Logger) Error(err error, msg string, kv ...any) {
	attrs := internal.KVToAttrs(kv)
	if err != nil {
		attrs = append([]slog.Attr{slog.Any("error", err)}, attrs...)
	}
	l.log(slog.LevelError, msg, attrs)
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr) {
	all := append([]slog.Attr{}, l.attrs...)
	all = append(all, attrs...)
	l.handler.LogRecord(level, msg, all)
}

