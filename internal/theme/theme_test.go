package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinThemes(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no built-in themes")
	}

	for _, name := range names {
		th, err := Load(name)
		if err != nil {
			t.Errorf("load %s: %v", name, err)
			continue
		}
		if th.Colors.Primary == "" || th.Colors.Background == "" || th.Colors.Text == "" {
			t.Errorf("theme %s has empty core colors: %+v", name, th.Colors)
		}
		if len(th.Chart.Palette) == 0 {
			t.Errorf("theme %s has no palette", name)
		}
		if th.Fonts.Body == "" {
			t.Errorf("theme %s has no body font", name)
		}
	}
}

func TestLoadIsCaseInsensitive(t *testing.T) {
	lower, err := Load("corporate")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	upper, err := Load("Corporate")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lower.Name != upper.Name {
		t.Errorf("case-insensitive lookup failed: %s vs %s", lower.Name, upper.Name)
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCustomFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte(`colors:
  primary: "#123456"
  background: "#ffffff"
  text: "#111111"
chart:
  palette: ["#123456", "#654321"]
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	th, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Colors.Primary != "#123456" {
		t.Errorf("primary = %s, want #123456", th.Colors.Primary)
	}
	if th.Name != "custom" {
		t.Errorf("name = %s, want custom (from filename)", th.Name)
	}
}

func TestPaletteColorCycles(t *testing.T) {
	th := Theme{Chart: Chart{Palette: []string{"#a", "#b", "#c"}}}
	if got := th.PaletteColor(4); got != "#b" {
		t.Errorf("PaletteColor(4) = %s, want #b", got)
	}

	empty := Theme{Colors: Colors{Primary: "#p"}}
	if got := empty.PaletteColor(0); got != "#p" {
		t.Errorf("empty palette = %s, want primary", got)
	}
}
