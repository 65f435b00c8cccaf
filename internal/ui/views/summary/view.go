package summary

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	summarydto "kitchen/internal/modules/summary/dto"
	"kitchen/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Summarize(ctx context.Context, findings, audience string) (summarydto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type GeneratedMsg struct {
	Summary summarydto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the latest summary through glamour.
type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	summary  summarydto.SummaryOutput
	err      error
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, renderer: r}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(m.width-4, 10)
		m.viewport.Height = max(m.height-2, 1)
		m.viewport.SetContent(m.render())

	case GeneratedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Summarizing…")
	}
	return m.viewport.View()
}

// Generate builds a fresh summary with the given findings.
func (m *Model) Generate(findings string) tea.Cmd {
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Summarize(context.Background(), findings, "")
		return GeneratedMsg{Summary: out, Err: err}
	})
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Error.Render("summary failed: " + m.err.Error())
	}
	if m.summary.Markdown == "" {
		return theme.Muted.Render("No summary yet. Run :summary [findings] to build one.")
	}
	if m.renderer == nil {
		return m.summary.Markdown
	}
	out, err := m.renderer.Render(m.summary.Markdown)
	if err != nil {
		return m.summary.Markdown
	}
	return out
}
