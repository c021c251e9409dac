// Package ui provides user-facing output for the genex CLI.
//
// Overview:
//   - Responsibility: Prefixed human output or JSON messages for command results
//   - Key Types: Message, OutputLevel
//   - Concurrency Model: Settings are guarded by a RWMutex; safe for concurrent use
//   - Error Semantics: Encoding failures are reported on stderr and otherwise ignored
//   - Performance Notes: One write per message
//
// Usage:
//
//	ui.Step(1, 2, "Rendering %s", name)
//	ui.Success("Generated %d files", n)
//	ui.Error("Generation failed: %v", err)
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	stdoutDefault io.Writer = os.Stdout
	stderrDefault io.Writer = os.Stderr
)

var (
	verbose    bool
	jsonOutput bool
	stdout     = stdoutDefault
	stderr     = stderrDefault
	mu         sync.RWMutex
)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

// Message is the JSON form of one output line.
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug output.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetJSONOutput switches to one JSON object per message on stdout.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// SetOutput redirects standard and error output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func output(level OutputLevel, data any, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	out, errOut := stdout, stderr
	mu.RUnlock()

	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		encoder := json.NewEncoder(out)
		if err := encoder.Encode(Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = "🔍 DEBUG:"
	case LevelInfo:
		prefix = "ℹ️  INFO:"
	case LevelWarning:
		prefix = "⚠️  WARN:"
	case LevelError:
		prefix = "❌ ERROR:"
	case LevelSuccess:
		prefix = "✅ SUCCESS:"
	}

	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug outputs a message shown only in verbose mode.
func Debug(format string, args ...any) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...any) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...any) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message on stderr.
func Error(format string, args ...any) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...any) {
	output(LevelSuccess, nil, format, args...)
}

// Result outputs a success message carrying data. Human output shows only
// the text; JSON output includes data under "data".
func Result(data any, format string, args ...any) {
	output(LevelSuccess, data, format, args...)
}

// Step outputs a step indicator with message.
func Step(step, total int, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	out := stdout
	mu.RUnlock()

	if useJSON {
		Info(format, args...)
		return
	}

	fmt.Fprintf(out, "  [%d/%d] %s\n", step, total, fmt.Sprintf(format, args...))
}
