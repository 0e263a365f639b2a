package logging

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLoggerWritesToSessionFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	l, err := NewLogger("storetest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	if l.SessionID() == "" {
		t.Error("logger should carry a session ID")
	}
	if !strings.Contains(l.LogPath(), l.SessionID()) {
		t.Errorf("log path %q should embed the session ID", l.LogPath())
	}

	l.Infof("hello %d", 42)
	l.Warnf("low disk")

	data, err := os.ReadFile(l.LogPath())
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	text := string(data)
	for _, want := range []string{"[storetest]", "[INFO] hello 42", "[WARN] low disk"} {
		if !strings.Contains(text, want) {
			t.Errorf("log should contain %q, got %q", want, text)
		}
	}

	// A second component in the same process appends to the same file.
	other, err := NewLogger("othercomp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer other.Close()
	if other.LogPath() != l.LogPath() {
		t.Errorf("components should share the session file: %q vs %q", other.LogPath(), l.LogPath())
	}
}

func TestFallbackLoggerUsesStderr(t *testing.T) {
	l := newFallbackLogger("fallback", errors.New("no home"))

	if l.LogPath() != "" {
		t.Errorf("fallback logger should have no log path, got %q", l.LogPath())
	}
	if l.Writer() != os.Stderr {
		t.Error("fallback logger should write to stderr")
	}

	// Must not panic without a backing file.
	l.Errorf("still logging: %v", errors.New("boom"))
	if err := l.Close(); err != nil {
		t.Errorf("closing a fallback logger should be a no-op, got %v", err)
	}
}
