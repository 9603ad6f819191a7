package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/geometry"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// Dashboard panel indices.
const (
	panelLoad = iota
	panelServices
	panelStream
	panelCount
)

const (
	defaultRefresh = 100 * time.Millisecond
	chartRows      = 10
)

// dashboardSource is the part of the engine the dashboard reads.
type dashboardSource interface {
	Snapshot() models.DashboardSnapshot
	Reset()
}

type dashboardModel struct {
	source      dashboardSource
	refresh     time.Duration
	activePanel int
	width       int
	height      int

	snap models.DashboardSnapshot
}

// tickMsg asks the model to pull a fresh snapshot.
type tickMsg time.Time

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	loadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Background(lipgloss.Color("189")).Padding(0, 1)
	chartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(source dashboardSource, refresh time.Duration) dashboardModel {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	return dashboardModel{
		source:      source,
		refresh:     refresh,
		activePanel: panelLoad,
		snap:        source.Snapshot(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.tick()
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.source.Reset()
			m.snap = m.source.Snapshot()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snap = m.source.Snapshot()
		return m, m.tick()
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Sentinel ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	// Available width for panels after accounting for margins.
	availableWidth := max(m.width-2, 24)

	loadWidth := availableWidth - 4
	load := m.applyPanelStyle(panelLoad, m.renderLoadPanel(loadWidth-2), loadWidth)

	var lower string
	if availableWidth > 80 {
		colWidth := availableWidth/2 - 4
		lower = lipgloss.JoinHorizontal(lipgloss.Top,
			m.applyPanelStyle(panelServices, m.renderServicesPanel(), colWidth),
			m.applyPanelStyle(panelStream, m.renderStreamPanel(), colWidth),
		)
	} else {
		lower = lipgloss.JoinVertical(lipgloss.Left,
			m.applyPanelStyle(panelServices, m.renderServicesPanel(), loadWidth),
			m.applyPanelStyle(panelStream, m.renderStreamPanel(), loadWidth),
		)
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, load, lower, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderLoadPanel(cols int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Load"))
	b.WriteString("\n")
	b.WriteString(loadStyle.Render(fmt.Sprintf("%d%%", m.snap.CurrentLoad)))
	b.WriteString(" ")
	b.WriteString(badgeStyle.Render("Normal"))
	b.WriteString("\n\n")

	cols = max(cols, 2)
	for _, row := range geometry.Rasterize(m.snap.Samples, cols, chartRows) {
		b.WriteString(chartStyle.Render(row))
		b.WriteString("\n")
	}
	gap := max(cols-len("-60s")-len("Now"), 1)
	b.WriteString(axisStyle.Render("-60s" + strings.Repeat(" ", gap) + "Now"))
	return b.String()
}

func (m dashboardModel) renderServicesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Services"))
	b.WriteString("\n")

	if len(m.snap.Services) == 0 {
		b.WriteString("  No services configured.")
		return b.String()
	}
	for _, s := range m.snap.Services {
		status := okStyle.Render("●")
		if s.Status == models.ServiceDegraded {
			status = warnStyle.Render("●")
		}
		b.WriteString(fmt.Sprintf("  %s %-16s %4dms\n", status, s.Name, s.LatencyMs))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) renderStreamPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Live Stream"))
	b.WriteString("\n")

	if len(m.snap.Logs) == 0 {
		b.WriteString(mutedStyle.Render("  Waiting for events..."))
		return b.String()
	}
	// Newest first, as the stream scrolls downward.
	for i := len(m.snap.Logs) - 1; i >= 0; i-- {
		e := m.snap.Logs[i]
		sev := okStyle.Render("OK  ")
		if e.Severity == models.SeverityWarning {
			sev = warnStyle.Render("WARN")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", mutedStyle.Render(e.Timestamp), sev, e.Message))
	}
	return strings.TrimRight(b.String(), "\n")
}

var dashboardRefresh time.Duration

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for the live engine",
	Long: `Launch an interactive terminal dashboard showing the load curve, service
latencies and the live event stream, updating in real time.

Navigate between panels with Tab, reset the engine with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}

		// Log lines would tear the alt screen.
		engine := NewEngine(0, observability.NoopLogger())
		if err := engine.Start(context.Background()); err != nil {
			return fmt.Errorf("starting engine: %w", err)
		}
		defer engine.Stop()

		p := tea.NewProgram(newDashboardModel(engine, dashboardRefresh), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardRefresh, "refresh", defaultRefresh, "how often the view pulls a new snapshot")
	rootCmd.AddCommand(dashboardCmd)
}
