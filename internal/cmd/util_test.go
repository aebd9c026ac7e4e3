package cmd

import (
	"path/filepath"
	"testing"
)

func TestStoreDirHonorsConfigFlag(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	t.Cleanup(func() { configPath = "" })

	got, err := storeDir()
	if err != nil {
		t.Fatalf("storeDir: %v", err)
	}
	if got != dir {
		t.Errorf("storeDir = %s, want %s", got, dir)
	}
}

func TestStringOr(t *testing.T) {
	if got := stringOr("flag", "fallback"); got != "flag" {
		t.Errorf("stringOr = %s, want flag", got)
	}
	if got := stringOr("", "fallback"); got != "fallback" {
		t.Errorf("stringOr = %s, want fallback", got)
	}
}
