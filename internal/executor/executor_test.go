package executor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor("/bin/sh", dir)

	cmd := e.Command("pwd")
	if cmd.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cmd.Dir)
	}
	if len(cmd.Args) != 3 || cmd.Args[1] != "-c" || cmd.Args[2] != "pwd" {
		t.Errorf("expected shell -c invocation, got %v", cmd.Args)
	}
}

func TestSpawn(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor("/bin/sh", dir)

	if err := e.Spawn("touch spawned &"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := filepath.Join(dir, "spawned")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(target); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("expected %s to be created", target)
}

func TestIsBackground(t *testing.T) {
	tests := []struct {
		command  string
		expected bool
	}{
		{"xterm &", true},
		{"xterm & ", true},
		{"top", false},
		{"a && b", false},
	}
	for _, tt := range tests {
		if got := IsBackground(tt.command); got != tt.expected {
			t.Errorf("IsBackground(%q): expected %v, got %v", tt.command, tt.expected, got)
		}
	}
}

func TestDefaultShell(t *testing.T) {
	if NewExecutor("", "").Shell() != "/bin/sh" {
		t.Errorf("expected /bin/sh fallback")
	}
}
