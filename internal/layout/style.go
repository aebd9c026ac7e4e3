package layout

// Style is the fully resolved set of style parameters a dashboard renders
// with. Values come from a named preset, overridden field-by-field by any
// explicit style settings in the spec.
type Style struct {
	FontScale     float64
	HSpacing      float64
	VSpacing      float64
	WidgetPadding int
	TitleMargin   float64
	TitleSize     int
}

// Overrides carries the spec's style block. Preset names the base bundle;
// nil pointer fields mean "use the preset value".
type Overrides struct {
	Preset        string
	FontScale     *float64
	HSpacing      *float64
	VSpacing      *float64
	WidgetPadding *int
	TitleMargin   *float64
	TitleSize     *int
}

// DefaultTitleSize is the dashboard title size in pixels before font
// scaling, used when neither preset nor spec sets one.
const DefaultTitleSize = 28

// presets are the named style bundles. Each is a fixed tuple of
// (font_scale, h_spacing, v_spacing, widget_padding, title_margin).
var presets = map[string]Style{
	"compact":      {FontScale: 0.85, HSpacing: 0.015, VSpacing: 0.03, WidgetPadding: 10, TitleMargin: 0.06, TitleSize: DefaultTitleSize},
	"default":      {FontScale: 1.0, HSpacing: 0.02, VSpacing: 0.04, WidgetPadding: 20, TitleMargin: 0.08, TitleSize: DefaultTitleSize},
	"presentation": {FontScale: 1.3, HSpacing: 0.03, VSpacing: 0.06, WidgetPadding: 25, TitleMargin: 0.10, TitleSize: 32},
	"spacious":     {FontScale: 1.15, HSpacing: 0.05, VSpacing: 0.08, WidgetPadding: 30, TitleMargin: 0.12, TitleSize: DefaultTitleSize},
}

// PresetNames lists the valid preset names.
func PresetNames() []string {
	return []string{"compact", "default", "presentation", "spacious"}
}

// Resolve produces the effective style: the named preset (falling back to
// "default" for unknown or empty names) with every explicitly set override
// applied on top.
func Resolve(o Overrides) Style {
	s, ok := presets[o.Preset]
	if !ok {
		s = presets["default"]
	}

	if o.FontScale != nil {
		s.FontScale = *o.FontScale
	}
	if o.HSpacing != nil {
		s.HSpacing = *o.HSpacing
	}
	if o.VSpacing != nil {
		s.VSpacing = *o.VSpacing
	}
	if o.WidgetPadding != nil {
		s.WidgetPadding = *o.WidgetPadding
	}
	if o.TitleMargin != nil {
		s.TitleMargin = *o.TitleMargin
	}
	if o.TitleSize != nil {
		s.TitleSize = *o.TitleSize
	}

	return s
}
