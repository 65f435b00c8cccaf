package stages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "kitchen/internal/modules/ledger/dto"
	"kitchen/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Overview(ctx context.Context) (ledgerdto.OverviewOutput, error)
	Display(ctx context.Context) (ledgerdto.DisplayOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OverviewLoadedMsg struct {
	Overview ledgerdto.OverviewOutput
	Err      error
}

type DisplayMsg struct {
	Display ledgerdto.DisplayOutput
	Err     error
}

// TickMsg drives the once-a-second clock refresh.
type TickMsg time.Time

// ─── list item ───────────────────────────────────────────────────────────────

type stageItem struct {
	stage ledgerdto.StageOutput
}

func (i stageItem) Title() string { return i.stage.Name }
func (i stageItem) Description() string {
	if i.stage.ProgressErr != "" {
		return fmt.Sprintf("%.2f h  no goal", i.stage.Hours)
	}
	return fmt.Sprintf("%.2f / %.0f h  %.1f%%", i.stage.Hours, i.stage.Goal, i.stage.Progress*100)
}
func (i stageItem) FilterValue() string { return i.stage.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	bar      progress.Model
	overview ledgerdto.OverviewOutput
	display  ledgerdto.DisplayOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Stages"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))

	return Model{port: port, list: l, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case OverviewLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.overview = msg.Overview
		items := make([]list.Item, len(msg.Overview.Stages))
		for i, s := range msg.Overview.Stages {
			items[i] = stageItem{stage: s}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DisplayMsg:
		if msg.Err == nil {
			m.display = msg.Display
		}

	case TickMsg:
		return m, tea.Batch(m.displayCmd(), tick())
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.
		Width(max(detailW-4, 10)).
		Height(max(m.height-2, 1)).
		Render(m.renderDetail(detailW - 6))
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Refresh reloads the stage overview and the clock.
func (m Model) Refresh() tea.Cmd {
	return tea.Batch(m.loadOverviewCmd(), m.displayCmd())
}

// SelectedStage returns the highlighted stage ID, if any.
func (m Model) SelectedStage() (string, bool) {
	if item, ok := m.list.SelectedItem().(stageItem); ok {
		return item.stage.ID, true
	}
	return "", false
}

// Running reports whether the last clock reading had a timer running.
func (m Model) Running() bool { return m.display.Running }

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.bar.Width = max(m.width-listW-30, 10)
}

func (m Model) renderDetail(width int) string {
	var sb strings.Builder
	if m.err != nil {
		sb.WriteString(theme.Error.Render("error: "+m.err.Error()) + "\n\n")
	}

	sb.WriteString(theme.Title.Render("Timer") + "\n")
	d := m.display
	if d.Running {
		sb.WriteString(theme.Clock.Render(d.Text) + " " + d.StageName)
		if d.Author != "" {
			sb.WriteString(theme.Muted.Render("  by " + d.Author))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(theme.Muted.Render(" 00:00:00  idle") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Progress") + "\n")
	nameW := 0
	for _, s := range m.overview.Stages {
		nameW = max(nameW, lipgloss.Width(s.Name))
	}
	label := lipgloss.NewStyle().Width(nameW + 1)
	for _, s := range m.overview.Stages {
		row := label.Render(s.Name)
		if s.ProgressErr != "" {
			row += theme.Error.Render(" goal not set")
		} else {
			row += " " + m.bar.ViewAs(s.Progress)
		}
		sb.WriteString(row + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start/stop on selected  r: reset  /: filter"))
	return lipgloss.NewStyle().MaxWidth(max(width, 1)).Render(sb.String())
}

func (m Model) loadOverviewCmd() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.port.Overview(context.Background())
		return OverviewLoadedMsg{Overview: overview, Err: err}
	}
}

func (m Model) displayCmd() tea.Cmd {
	return func() tea.Msg {
		display, err := m.port.Display(context.Background())
		return DisplayMsg{Display: display, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
