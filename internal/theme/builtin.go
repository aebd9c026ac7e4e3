package theme

// builtin holds the five stock themes. The values are data, not behavior:
// pick one by name with Load.
var builtin = map[string]Theme{
	"corporate": {
		Name: "corporate",
		Colors: Colors{
			Primary:       "#1e3a5f",
			Secondary:     "#4a90d9",
			Accent:        "#2ecc71",
			Background:    "#ffffff",
			Surface:       "#f8f9fa",
			Text:          "#2c3e50",
			TextSecondary: "#7f8c8d",
			Grid:          "#ecf0f1",
			Positive:      "#27ae60",
			Negative:      "#e74c3c",
			Neutral:       "#95a5a6",
		},
		Fonts: Fonts{Title: "Arial", Body: "Arial", Mono: "Consolas"},
		Chart: Chart{
			Palette:      []string{"#1e3a5f", "#4a90d9", "#2ecc71", "#f39c12", "#9b59b6", "#e74c3c", "#1abc9c"},
			Gridlines:    true,
			BorderRadius: 4,
		},
	},
	"modern": {
		Name: "modern",
		Colors: Colors{
			Primary:       "#6366f1",
			Secondary:     "#8b5cf6",
			Accent:        "#06b6d4",
			Background:    "#ffffff",
			Surface:       "#f1f5f9",
			Text:          "#1e293b",
			TextSecondary: "#64748b",
			Grid:          "#e2e8f0",
			Positive:      "#22c55e",
			Negative:      "#ef4444",
			Neutral:       "#94a3b8",
		},
		Fonts: Fonts{Title: "Inter", Body: "Inter", Mono: "JetBrains Mono"},
		Chart: Chart{
			Palette:      []string{"#6366f1", "#8b5cf6", "#06b6d4", "#f59e0b", "#ec4899", "#14b8a6", "#f97316"},
			Gridlines:    true,
			BorderRadius: 8,
		},
	},
	"minimal": {
		Name: "minimal",
		Colors: Colors{
			Primary:       "#000000",
			Secondary:     "#404040",
			Accent:        "#000000",
			Background:    "#ffffff",
			Surface:       "#fafafa",
			Text:          "#000000",
			TextSecondary: "#666666",
			Grid:          "#eeeeee",
			Positive:      "#000000",
			Negative:      "#666666",
			Neutral:       "#999999",
		},
		Fonts: Fonts{Title: "Helvetica", Body: "Helvetica", Mono: "Monaco"},
		Chart: Chart{
			Palette:      []string{"#000000", "#404040", "#808080", "#a0a0a0", "#c0c0c0"},
			Gridlines:    false,
			BorderRadius: 0,
		},
	},
	"dark": {
		Name: "dark",
		Colors: Colors{
			Primary:       "#60a5fa",
			Secondary:     "#a78bfa",
			Accent:        "#34d399",
			Background:    "#1e1e1e",
			Surface:       "#2d2d2d",
			Text:          "#f5f5f5",
			TextSecondary: "#a3a3a3",
			Grid:          "#404040",
			Positive:      "#4ade80",
			Negative:      "#f87171",
			Neutral:       "#737373",
		},
		Fonts: Fonts{Title: "Arial", Body: "Arial", Mono: "Consolas"},
		Chart: Chart{
			Palette:      []string{"#60a5fa", "#a78bfa", "#34d399", "#fbbf24", "#f472b6", "#2dd4bf", "#fb923c"},
			Gridlines:    true,
			BorderRadius: 4,
		},
	},
	"light": {
		Name: "light",
		Colors: Colors{
			Primary:       "#3b82f6",
			Secondary:     "#8b5cf6",
			Accent:        "#10b981",
			Background:    "#ffffff",
			Surface:       "#f9fafb",
			Text:          "#111827",
			TextSecondary: "#6b7280",
			Grid:          "#e5e7eb",
			Positive:      "#10b981",
			Negative:      "#ef4444",
			Neutral:       "#9ca3af",
		},
		Fonts: Fonts{Title: "Arial", Body: "Arial", Mono: "Consolas"},
		Chart: Chart{
			Palette:      []string{"#3b82f6", "#8b5cf6", "#10b981", "#f59e0b", "#ec4899", "#14b8a6", "#f97316"},
			Gridlines:    true,
			BorderRadius: 6,
		},
	},
}
