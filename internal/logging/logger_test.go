package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	globalConfig = Config{}
	logBuffer = nil
	logCallback = nil
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"device": "debug",
			"http":   "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"device", true, true, true},
		{"http", false, false, true},
		{"session", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()
			ctx := context.Background()

			if got := handler.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := handler.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Info enabled = %v, want %v", got, tt.wantInfo)
			}
			if got := handler.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("Warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetState()

	before := GetLogger("device")
	if before.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger created before Initialize should default to info")
	}

	Initialize(Config{Level: "info", Modules: map[string]string{"device": "debug"}})

	if after := GetLogger("device"); after != before {
		t.Error("logger should be cached across Initialize")
	}
	if !before.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("cached logger should pick up the configured level")
	}
}

func TestSetModuleLevel(t *testing.T) {
	resetState()
	Initialize(Config{Level: "warn"})

	logger := GetLogger("store")
	if logger.Handler().Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	if !SetModuleLevel("store", "debug") {
		t.Fatal("SetModuleLevel rejected a valid level")
	}
	if !logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("level change not applied")
	}
	if SetModuleLevel("store", "loud") {
		t.Error("SetModuleLevel accepted an invalid level")
	}
}

func TestBufferAndCallback(t *testing.T) {
	resetState()
	Initialize(Config{Level: "debug"})

	got := make(chan LogEntry, 1)
	SetLogCallback(func(e LogEntry) { got <- e })
	defer SetLogCallback(nil)

	GetLogger("session").Info("Command applied", "command", "set-mode", "frames", 6)

	select {
	case e := <-got:
		if e.Module != "session" || e.Level != "info" || e.Message != "Command applied" {
			t.Errorf("entry = %+v", e)
		}
		if e.Attributes["command"] != "set-mode" {
			t.Errorf("attributes = %v", e.Attributes)
		}
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}

	entries := GetBuffer().ReadAll()
	if len(entries) == 0 || entries[len(entries)-1].Message != "Command applied" {
		t.Errorf("buffer = %+v", entries)
	}
}

func TestRingBufferWraps(t *testing.T) {
	rb := NewRingBuffer(3)
	for i, msg := range []string{"a", "b", "c", "d", "e"} {
		rb.Write(LogEntry{Message: msg, Timestamp: time.Unix(int64(i), 0)})
	}

	entries := rb.ReadAll()
	if rb.Count() != 3 || len(entries) != 3 {
		t.Fatalf("count = %d", rb.Count())
	}
	for i, want := range []string{"c", "d", "e"} {
		if entries[i].Message != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Message, want)
		}
	}
}

func TestRingBufferReadLast(t *testing.T) {
	rb := NewRingBuffer(4)
	if got := rb.ReadLast(2); got != nil {
		t.Errorf("empty buffer returned %v", got)
	}
	for _, msg := range []string{"a", "b", "c", "d", "e", "f"} {
		rb.Write(LogEntry{Message: msg})
	}

	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"e", "f"}},
		{4, []string{"c", "d", "e", "f"}},
		{10, []string{"c", "d", "e", "f"}},
		{0, []string{"c", "d", "e", "f"}},
	}
	for _, tt := range tests {
		got := rb.ReadLast(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("ReadLast(%d) returned %d entries", tt.n, len(got))
		}
		for i, want := range tt.want {
			if got[i].Message != want {
				t.Errorf("ReadLast(%d)[%d] = %q, want %q", tt.n, i, got[i].Message, want)
			}
		}
	}
}

func TestMultiHandlerDebugOutput(t *testing.T) {
	var buf bytes.Buffer

	debugHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(debugHandler, infoHandler)).With("module", "test")
	logger.Debug("debug only message")

	if count := strings.Count(buf.String(), "debug only message"); count != 1 {
		t.Errorf("expected 1 debug message, got %d: %s", count, buf.String())
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestMultiHandlerKeepsGoingOnError(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)

	multi := NewMultiHandler(failingHandler{text}, text)
	err := multi.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0))
	if err == nil {
		t.Error("expected the handler error to be returned")
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Error("second handler skipped after first failed")
	}
}

func TestFormatLogLine(t *testing.T) {
	line := FormatLogLine(LogEntry{
		Timestamp:  time.Date(2025, 1, 27, 10, 30, 0, 0, time.UTC),
		Level:      "warn",
		Module:     "store",
		Message:    "Failed to save state",
		Attributes: map[string]any{"path": "/tmp/state.toml", "command": "set-mode"},
	})
	want := "2025-01-27T10:30:00Z [WARN] [store] Failed to save state command=set-mode path=/tmp/state.toml"
	if line != want {
		t.Errorf("FormatLogLine() =\n%q\nwant\n%q", line, want)
	}
}

func TestJournalKey(t *testing.T) {
	tests := map[string]string{
		"endpoint":       "ENDPOINT",
		"frames_written": "FRAMES_WRITTEN",
		"http.status":    "HTTP_STATUS",
	}
	for in, want := range tests {
		if got := journalKey(in); got != want {
			t.Errorf("journalKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevelValues(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		isNil bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			switch {
			case tt.isNil && got != nil:
				t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
			case !tt.isNil && got == nil:
				t.Errorf("parseLevel(%q) = nil, want %v", tt.input, tt.want)
			case !tt.isNil && *got != tt.want:
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}
