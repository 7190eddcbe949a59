package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// ── sections ─────────────────────────────────────────────────────────────────

var dashboardSections = []string{"Overview", "Capacity", "Team", "Conflicts", "Insights"}

const (
	sectionOverview = iota
	sectionCapacity
	sectionTeam
	sectionConflicts
	sectionInsights
)

// header and footer lines around the viewport
const dashboardChromeHeight = 4

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "prev")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ── messages ─────────────────────────────────────────────────────────────────

type reportLoadedMsg struct {
	report *app.HealthReport
	err    error
}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel shows one release's health report in switchable sections
// inside a scrollable viewport.
type dashboardModel struct {
	ctx    context.Context
	health app.HealthReportUseCase
	req    app.HealthRequest

	report  *app.HealthReport
	err     error
	loading bool
	section int

	viewport viewport.Model
	help     help.Model
	keys     dashboardKeyMap
}

func newDashboardModel(ctx context.Context, health app.HealthReportUseCase, req app.HealthRequest) dashboardModel {
	return dashboardModel{
		ctx:      ctx,
		health:   health,
		req:      req,
		loading:  true,
		viewport: viewport.New(100, 30),
		help:     help.New(),
		keys:     defaultDashboardKeys(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	ctx, health, req := m.ctx, m.health, m.req
	return func() tea.Msg {
		report, err := health.HealthReport(ctx, req)
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-dashboardChromeHeight)
		m.help.Width = msg.Width
		m.viewport.SetContent(m.content())
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		m.report, m.err = msg.report, msg.err
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectSection(m.section + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectSection(m.section - 1)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *dashboardModel) selectSection(i int) {
	n := len(dashboardSections)
	m.section = ((i % n) + n) % n
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m dashboardModel) content() string {
	switch {
	case m.err != nil:
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	case m.report == nil:
		return formatter.Dim("Loading…")
	}

	r := m.report
	switch m.section {
	case sectionCapacity:
		return formatter.FormatCapacity(r)
	case sectionTeam:
		return formatter.FormatTeam(r)
	case sectionConflicts:
		return formatter.FormatConflicts(r.Conflicts, r.Metrics)
	case sectionInsights:
		return formatter.FormatInsights(r)
	default:
		return overviewContent(r)
	}
}

func overviewContent(r *app.HealthReport) string {
	var b strings.Builder
	b.WriteString(formatter.FormatTimeline(r))
	fmt.Fprintf(&b, "\nSprint utilization   %s\n", formatter.RenderUtilization(r.Utilization, 20))
	fmt.Fprintf(&b, "Dev-window capacity  %s %s\n",
		formatter.RenderUtilization(r.Capacity.Utilization, 20), formatter.CapacityPill(r.Capacity.Status))
	b.WriteString("\n" + formatter.FormatConflictSummary(r.Metrics) + "\n")
	if len(r.Insights) > 0 {
		in := r.Insights[0]
		fmt.Fprintf(&b, "\n%s %s\n", formatter.StyleHeader.Render("Top insight:"), formatter.Bold(in.Title))
		if in.Action != "" {
			fmt.Fprintf(&b, "  %s %s\n", formatter.StyleGreen.Render("→"), in.Action)
		}
	}
	return b.String()
}

func (m dashboardModel) View() string {
	title := "releaseplan"
	if m.report != nil {
		title += " · " + m.report.Release.Name
	}
	if m.loading {
		title += formatter.Dim("  refreshing…")
	}

	tabs := make([]string, len(dashboardSections))
	for i, name := range dashboardSections {
		if i == m.section {
			tabs[i] = formatter.StyleHeader.Render("[" + name + "]")
		} else {
			tabs[i] = formatter.Dim(" " + name + " ")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		formatter.Bold(title),
		strings.Join(tabs, " "),
		m.viewport.View(),
		m.help.View(m.keys),
	)
}

// ── command ──────────────────────────────────────────────────────────────────

func newDashboardCmd(a *App) *cobra.Command {
	var now *time.Time

	cmd := &cobra.Command{
		Use:   "dashboard <release>",
		Short: "Open an interactive release health dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errors.New("dashboard needs an interactive terminal; use capacity, team, conflicts or insights")
			}
			model := newDashboardModel(cmd.Context(), a.Health, app.HealthRequest{ReleaseRef: args[0], Now: now})
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Var(newDateValue(&now), "now", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}
