// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the live dashboard engine as read-only MCP tools.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/sentinel/internal/geometry"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// SnapshotSource provides the current dashboard state.
type SnapshotSource interface {
	Snapshot() models.DashboardSnapshot
}

// Server wraps a SnapshotSource and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	source SnapshotSource
	stats  observability.StatsCalculator
}

// NewServer creates a new MCP server. stats may be nil, in which case the
// default calculator is used.
func NewServer(source SnapshotSource, stats observability.StatsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}
	if stats == nil {
		stats = observability.NewStatsCalculator()
	}

	s := &Server{source: source, stats: stats}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "sentinel", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio, blocking until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getSnapshotInput struct{}

type serviceOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LatencyMs int    `json:"latency_ms"`
	Status    string `json:"status"`
}

type logEntryOutput struct {
	ID        uint64 `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

type snapshotOutput struct {
	TakenAt     string           `json:"taken_at"`
	Running     bool             `json:"running"`
	CurrentLoad int              `json:"current_load"`
	Samples     []float64        `json:"samples"`
	Services    []serviceOutput  `json:"services"`
	Logs        []logEntryOutput `json:"logs"`
}

type getCurveInput struct {
	Width  float64 `json:"width,omitempty" jsonschema:"width of the drawing box. Defaults to 100."`
	Height float64 `json:"height,omitempty" jsonschema:"height of the drawing box. Defaults to 100."`
}

type curveOutput struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Points int     `json:"points"`
	Stroke string  `json:"stroke"`
	Area   string  `json:"area"`
}

type getStatsInput struct{}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_snapshot",
		Description: "Get the current dashboard state: the sample window, current load, service latencies and the live stream.",
	}, s.handleGetSnapshot)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_curve",
		Description: "Get the smoothed load curve as SVG path data (stroke and filled area) for a box of the given size.",
	}, s.handleGetCurve)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get summary statistics of the current window: min, max and mean load, warning count and mean service latency.",
	}, s.handleGetStats)
}

// --- Tool handlers ---

func (s *Server) handleGetSnapshot(_ context.Context, _ *gomcp.CallToolRequest, _ getSnapshotInput) (*gomcp.CallToolResult, snapshotOutput, error) {
	return nil, snapshotToOutput(s.source.Snapshot()), nil
}

func (s *Server) handleGetCurve(_ context.Context, _ *gomcp.CallToolRequest, input getCurveInput) (*gomcp.CallToolResult, curveOutput, error) {
	w, h := input.Width, input.Height
	if w == 0 {
		w = geometry.ViewBox
	}
	if h == 0 {
		h = geometry.ViewBox
	}
	if w < 0 || h < 0 {
		return errorResult(fmt.Sprintf("width and height must be positive, got %gx%g", w, h)), curveOutput{}, nil
	}

	samples := s.source.Snapshot().Samples
	return nil, curveOutput{
		Width:  w,
		Height: h,
		Points: len(samples),
		Stroke: geometry.Smooth(samples, w, h).SVG(),
		Area:   geometry.Area(samples, w, h).SVG(),
	}, nil
}

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, _ getStatsInput) (*gomcp.CallToolResult, observability.WindowStats, error) {
	return nil, s.stats.Calculate(s.source.Snapshot()), nil
}

func snapshotToOutput(snap models.DashboardSnapshot) snapshotOutput {
	out := snapshotOutput{
		TakenAt:     snap.TakenAt.UTC().Format(time.RFC3339),
		Running:     snap.Running,
		CurrentLoad: snap.CurrentLoad,
		Samples:     snap.Samples,
		Services:    make([]serviceOutput, len(snap.Services)),
		Logs:        make([]logEntryOutput, len(snap.Logs)),
	}
	for i, svc := range snap.Services {
		out.Services[i] = serviceOutput{
			ID:        svc.ID,
			Name:      svc.Name,
			LatencyMs: svc.LatencyMs,
			Status:    string(svc.Status),
		}
	}
	for i, e := range snap.Logs {
		out.Logs[i] = logEntryOutput{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Message:   e.Message,
			Severity:  string(e.Severity),
		}
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
