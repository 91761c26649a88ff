package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileRecorder_AppendsActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	recorder := NewFileRecorder(path)
	recorder.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}

	for _, action := range []string{"createCustomer", "deposit", "withdraw"} {
		if err := recorder.LogAction(action); err != nil {
			t.Fatalf("LogAction(%s) failed: %v", action, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	want := []string{
		"createCustomer,2026-03-14T12:00:00Z",
		"deposit,2026-03-14T12:00:00Z",
		"withdraw,2026-03-14T12:00:00Z",
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("Line %d: expected %q, got %q", i, line, lines[i])
		}
	}
}

func TestFileRecorder_CreatesFileOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	recorder := NewFileRecorder(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("File must not exist before the first action")
	}
	if err := recorder.LogAction("createAccount"); err != nil {
		t.Fatalf("LogAction failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file after first action: %v", err)
	}
}

func TestFileRecorder_UnwritablePath(t *testing.T) {
	recorder := NewFileRecorder(filepath.Join(t.TempDir(), "missing", "audit.csv"))

	if err := recorder.LogAction("deposit"); err == nil {
		t.Error("Expected error for unwritable path")
	}
}

func TestNopRecorder(t *testing.T) {
	if err := (NopRecorder{}).LogAction("anything"); err != nil {
		t.Errorf("NopRecorder must not fail: %v", err)
	}
}
