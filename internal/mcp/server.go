// Package mcp provides an MCP (Model Context Protocol) server for dashgen.
// This lets AI agents render dashboards, analyze datasets, and browse
// themes through MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dashkite/dashgen/internal/analyze"
	"github.com/dashkite/dashgen/internal/dashboard"
	"github.com/dashkite/dashgen/internal/export"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
)

// Server wraps the MCP server with dashgen-specific tools.
type Server struct {
	mcpServer *server.MCPServer
	outputDir string
}

// Config holds server configuration.
type Config struct {
	OutputDir string // Where rendered images land (default "output")
	Version   string
}

// New creates a new MCP server exposing the dashgen tools.
func New(cfg Config) *Server {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}

	mcpServer := server.NewMCPServer(
		"dashgen",
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{mcpServer: mcpServer, outputDir: cfg.OutputDir}
	s.registerRenderTool()
	s.registerAnalyzeTool()
	s.registerThemesTool()
	s.registerSuggestTool()
	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerRenderTool() {
	tool := mcp.NewTool("render_dashboard",
		mcp.WithDescription("Render a dashboard image from a JSON spec. Returns the output file path."),
		mcp.WithString("spec",
			mcp.Required(),
			mcp.Description("Dashboard spec as a JSON string (title, layout, style, widgets)"),
		),
		mcp.WithString("theme",
			mcp.Description("Theme name (default: corporate)"),
		),
		mcp.WithString("filename",
			mcp.Description("Output filename without extension (default: dashboard)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: png, svg, pdf (default: png)"),
		),
		mcp.WithString("resolution",
			mcp.Description("Resolution preset (1080p, 4k, 720p) or WxH (default: 1080p)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleRender)
}

func (s *Server) registerAnalyzeTool() {
	tool := mcp.NewTool("analyze_data",
		mcp.WithDescription("Analyze a dataset and recommend dashboard widgets. Rule-based, no model calls."),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description("Dataset as a JSON string: field names mapped to arrays of values"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleAnalyze)
}

func (s *Server) registerThemesTool() {
	tool := mcp.NewTool("list_themes",
		mcp.WithDescription("List the built-in theme names and their palettes."),
	)
	s.mcpServer.AddTool(tool, s.handleThemes)
}

func (s *Server) registerSuggestTool() {
	tool := mcp.NewTool("suggest_layout",
		mcp.WithDescription("Suggest a grid layout for a number of widgets on a 12-column grid."),
		mcp.WithNumber("widgets",
			mcp.Required(),
			mcp.Description("Number of widgets to place"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleSuggest)
}

func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	specJSON, ok := args["spec"].(string)
	if !ok || specJSON == "" {
		return mcp.NewToolResultError("spec parameter is required"), nil
	}

	d, err := spec.Parse([]byte(specJSON))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	themeName, _ := args["theme"].(string)
	if themeName == "" {
		themeName = "corporate"
	}
	th, err := theme.Load(themeName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filename, _ := args["filename"].(string)
	if filename == "" {
		filename = "dashboard"
	}
	formatStr, _ := args["format"].(string)
	format, err := export.ParseFormat(formatStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resolution, _ := args["resolution"].(string)
	if resolution == "" {
		resolution = "1080p"
	}

	path, err := dashboard.Render(d, th, dashboard.RenderOptions{
		OutputDir:  s.outputDir,
		Filename:   filename,
		Format:     format,
		Resolution: resolution,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("rendered %d widgets to %s", len(d.Widgets), path)), nil
}

func (s *Server) handleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	dataJSON, ok := args["data"].(string)
	if !ok || dataJSON == "" {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse dataset: %v", err)), nil
	}

	analyzer := &analyze.Analyzer{}
	res := analyzer.Analyze(ctx, data, true)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, name := range theme.Names() {
		t, err := theme.Load(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s: primary=%s background=%s text=%s\n",
			name, t.Colors.Primary, t.Colors.Background, t.Colors.Text)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	n, ok := args["widgets"].(float64)
	if !ok || n < 1 {
		return mcp.NewToolResultError("widgets parameter is required"), nil
	}
	return mcp.NewToolResultText(suggestLayout(int(n))), nil
}

// suggestLayout maps a widget count to a 12-column grid arrangement:
// KPIs-on-top-row conventions for small counts, even rows beyond that.
func suggestLayout(n int) string {
	switch n {
	case 1:
		return "1 widget: rows=1, place at row=0 col=0 colspan=12"
	case 2:
		return "2 widgets: rows=1, colspan=6 each (col=0 and col=6)"
	case 3:
		return "3 widgets: rows=1, colspan=4 each (col=0, 4, 8)"
	case 4:
		return "4 widgets: rows=2, colspan=6 each, two per row"
	default:
		perRow := 3
		rows := (n + perRow - 1) / perRow
		return fmt.Sprintf("%d widgets: rows=%d, %d per row with colspan=4; put KPIs on row 0 and charts below", n, rows, perRow)
	}
}
