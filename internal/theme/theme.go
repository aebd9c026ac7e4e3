// Package theme provides the named visual themes dashboards are styled
// with. Themes are immutable value bundles of colors, fonts, and chart
// palette settings; widget renderers and the composer only ever read them.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dashkite/dashgen/internal/figure"
)

// ErrNotFound is returned when a theme name matches no built-in theme and
// no readable theme file.
var ErrNotFound = fmt.Errorf("theme not found")

// Colors is the named color slots every theme must fill.
type Colors struct {
	Primary       string `json:"primary" yaml:"primary"`
	Secondary     string `json:"secondary" yaml:"secondary"`
	Accent        string `json:"accent" yaml:"accent"`
	Background    string `json:"background" yaml:"background"`
	Surface       string `json:"surface" yaml:"surface"`
	Text          string `json:"text" yaml:"text"`
	TextSecondary string `json:"text_secondary" yaml:"text_secondary"`
	Grid          string `json:"grid" yaml:"grid"`
	Positive      string `json:"positive" yaml:"positive"`
	Negative      string `json:"negative" yaml:"negative"`
	Neutral       string `json:"neutral" yaml:"neutral"`
}

// Fonts is the font family assignment for a theme.
type Fonts struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
	Mono  string `json:"mono" yaml:"mono"`
}

// Chart holds chart-specific theme settings.
type Chart struct {
	Palette      []string `json:"palette" yaml:"palette"`
	Gridlines    bool     `json:"gridlines" yaml:"gridlines"`
	BorderRadius int      `json:"border_radius" yaml:"border_radius"`
}

// Theme is one complete named theme.
type Theme struct {
	Name   string `json:"name" yaml:"name"`
	Colors Colors `json:"colors" yaml:"colors"`
	Fonts  Fonts  `json:"fonts" yaml:"fonts"`
	Chart  Chart  `json:"chart" yaml:"chart"`
}

// PaletteColor returns the palette color for series index i, cycling when
// the palette is shorter than the series count.
func (t Theme) PaletteColor(i int) string {
	if len(t.Chart.Palette) == 0 {
		return t.Colors.Primary
	}
	return t.Chart.Palette[i%len(t.Chart.Palette)]
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves a theme by built-in name or by path to a JSON or YAML
// theme file.
func Load(name string) (Theme, error) {
	if t, ok := builtin[strings.ToLower(name)]; ok {
		return t, nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".json" || ext == ".yaml" || ext == ".yml" {
		return loadFile(name, ext)
	}

	return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, name, strings.Join(Names(), ", "))
}

func loadFile(path, ext string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: reading %s: %v", ErrNotFound, path, err)
	}

	var t Theme
	if ext == ".json" {
		err = json.Unmarshal(data, &t)
	} else {
		err = yaml.Unmarshal(data, &t)
	}
	if err != nil {
		return Theme{}, fmt.Errorf("parsing theme file %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

// ApplyLayout writes theme-global styling into a figure's layout: paper and
// plot backgrounds, body font, and title color. Used for standalone widget
// renders; the composer applies its own variant with resolved style values.
func ApplyLayout(f *figure.Figure, t Theme) {
	f.Layout.PaperColor = t.Colors.Background
	f.Layout.PlotColor = t.Colors.Background
	f.Layout.Font.Family = t.Fonts.Body
	f.Layout.Font.Color = t.Colors.Text
	if f.Layout.Title != nil {
		if f.Layout.Title.Font.Color == "" {
			f.Layout.Title.Font.Color = t.Colors.Text
		}
		if f.Layout.Title.Font.Family == "" {
			f.Layout.Title.Font.Family = t.Fonts.Title
		}
	}
}
