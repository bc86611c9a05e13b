package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "test-component")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "test-component" {
		t.Errorf("Expected component 'test-component', got %q", logger.component)
	}
	if logger.SessionID() == "" {
		t.Error("Expected non-empty session ID")
	}
	if !strings.HasPrefix(logger.LogPath(), dir) {
		t.Errorf("Expected log path under %s, got %s", dir, logger.LogPath())
	}
	if _, err := os.Stat(logger.LogPath()); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.LogPath())
	}
}

func TestLoggerWritesToSessionFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "storage")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Infof("opened %s", "storage.json")
	logger.Errorf("write failed: %d", 42)
	logger.Close()

	content, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(content)

	for _, want := range []string{"[storage] [INFO] opened storage.json", "[storage] [ERROR] write failed: 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "cell", LevelWarn)

	logger.Debugf("debug")
	logger.Infof("info")
	logger.Warnf("warn")
	logger.Errorf("error")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Errorf("Expected debug/info to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("Expected warn and error entries, got:\n%s", out)
	}

	buf.Reset()
	logger.SetLevel(LevelDebug)
	logger.Debugf("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("Expected debug entry after SetLevel, got:\n%s", buf.String())
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "keeper", LevelDebug)

	logger.With("db").Infof("hydrated")

	if !strings.Contains(buf.String(), "[keeper.db] [INFO] hydrated") {
		t.Errorf("Expected sub-component tag, got:\n%s", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Errorf("nothing happens")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger returned %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"VERBOSE": LevelDebug,
		"info":    LevelInfo,
		"normal":  LevelInfo,
		"":        LevelInfo,
		"quiet":   LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLoggerConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, "concurrent")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Infof("message %d", n)
		}(i)
	}
	wg.Wait()
	logger.Close()

	content, err := os.ReadFile(filepath.Clean(logger.LogPath()))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if lines := strings.Count(string(content), "\n"); lines != 10 {
		t.Errorf("Expected 10 log lines, got %d", lines)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), "close")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
