package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if GetOutput() != "" {
		t.Errorf("expected empty output, got %q", GetOutput())
	}
	if !GetWatch() {
		t.Errorf("expected watch enabled by default")
	}
	if GetDebounce() != 100*time.Millisecond {
		t.Errorf("expected 100ms debounce, got %v", GetDebounce())
	}
	if w, h := GetExportSize(); w != 1024 || h != 768 {
		t.Errorf("expected 1024x768, got %dx%d", w, h)
	}
	if C.LogMode != "dev" {
		t.Errorf("expected dev log mode, got %q", C.LogMode)
	}
}

func TestInitFromFileAndEnv(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PINPOINT_DEBOUNCE_MS", "250")

	yaml := "defaults: \"[font=Mono 30px][navy]\"\nexport_width: 640\n"
	if err := os.WriteFile(filepath.Join(dir, "pinpoint.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if GetDefaults() != "[font=Mono 30px][navy]" {
		t.Errorf("expected defaults from file, got %q", GetDefaults())
	}
	if w, _ := GetExportSize(); w != 640 {
		t.Errorf("expected width 640, got %d", w)
	}
	if GetDebounce() != 250*time.Millisecond {
		t.Errorf("expected env override 250ms, got %v", GetDebounce())
	}
}

func TestSetters(t *testing.T) {
	viper.Reset()
	SetOutput("~/slides.png")
	SetWatch(false)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if GetOutput() != filepath.Join(home, "slides.png") {
		t.Errorf("expected tilde expansion, got %q", GetOutput())
	}
	if GetWatch() {
		t.Errorf("expected watch disabled")
	}
}
