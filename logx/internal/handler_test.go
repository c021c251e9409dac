package internal

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		minLevel slog.Level
		want     bool
	}{
		{"debug below info", slog.LevelDebug, slog.LevelInfo, false},
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"error above warn", slog.LevelError, slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(Options{Level: tt.minLevel}, &bytes.Buffer{})
			if got := handler.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestHandler_AsSlogHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	var handler slog.Handler = NewHandler(Options{Level: slog.LevelInfo, DisableTimestamp: true}, buf)

	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("cmd", "generate")}).WithGroup("ignored"))
	logger.Info("hello", "entity", "Person")

	out := buf.String()
	if !strings.HasPrefix(out, `level=INFO msg="hello"`) {
		t.Errorf("unexpected prefix: %s", out)
	}
	if !strings.Contains(out, `cmd="generate"`) || !strings.Contains(out, `entity="Person"`) {
		t.Errorf("missing attributes: %s", out)
	}
}

func TestKVToAttrs(t *testing.T) {
	attrs := KVToAttrs([]any{[]any{"path", "a"}, "count", 2, "dangling"})
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "path" || attrs[1].Key != "count" {
		t.Errorf("unexpected keys: %v", attrs)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value slog.Value
		want  string
	}{
		{slog.StringValue("x"), `"x"`},
		{slog.Int64Value(-3), "-3"},
		{slog.Float64Value(1.5), "1.5"},
		{slog.Float64Value(2), "2"},
		{slog.BoolValue(true), "true"},
		{slog.DurationValue(1500 * time.Millisecond), "1500"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelString(slog.LevelWarn) != "WARN" {
		t.Error("expected WARN")
	}
	if LevelString(slog.Level(2)) != "LEVEL(2)" {
		t.Errorf("unexpected custom level: %s", LevelString(slog.Level(2)))
	}
	if ColorizeLevel("OTHER") != "OTHER" {
		t.Error("unknown levels should not be colorized")
	}
}
