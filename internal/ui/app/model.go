package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feeddto "kitchen/internal/modules/feed/dto"
	ledgerdto "kitchen/internal/modules/ledger/dto"
	summarydto "kitchen/internal/modules/summary/dto"
	"kitchen/internal/ui/components"
	"kitchen/internal/ui/theme"
	feedview "kitchen/internal/ui/views/feed"
	stagesview "kitchen/internal/ui/views/stages"
	summaryview "kitchen/internal/ui/views/summary"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ledgerPort interface {
	Start(ctx context.Context, stage, author string) (ledgerdto.TimerOutput, error)
	Stop(ctx context.Context) (ledgerdto.StopOutput, error)
	Reset(ctx context.Context) (ledgerdto.TimerOutput, error)
	ClearLedger(ctx context.Context, stage string) (ledgerdto.OverviewOutput, error)
	Overview(ctx context.Context) (ledgerdto.OverviewOutput, error)
	Display(ctx context.Context) (ledgerdto.DisplayOutput, error)
}

type feedPort interface {
	Post(ctx context.Context, author, text string) (feeddto.NoteOutput, error)
	List(ctx context.Context, limit int) ([]feeddto.NoteOutput, error)
	SetWorkload(ctx context.Context, member, value string) (feeddto.WorkloadOutput, error)
	Board(ctx context.Context) (feeddto.BoardOutput, error)
}

type summaryPort interface {
	Summarize(ctx context.Context, findings, audience string) (summarydto.SummaryOutput, error)
	Export(ctx context.Context, findings, audience string) (summarydto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStages tabID = iota
	tabFeed
	tabSummary
	tabCount
)

var tabLabels = [tabCount]string{"Stages", "Feed", "Summary"}

// ─── async messages ──────────────────────────────────────────────────────────

// actionDoneMsg reports a finished mutation. On success every view reloads.
type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Note    key.Binding
	Mood    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop timer")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Note:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "post note")),
		Mood:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle mood")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Reset},
		{k.Note, k.Mood},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the acting
// member, the help overlay and the command palette; rendering is delegated
// to one sub-view per tab.
type Model struct {
	ledger  ledgerPort
	feed    feedPort
	summary summaryPort

	members []string
	author  string

	stagesView  stagesview.Model
	feedView    feedview.Model
	summaryView summaryview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	failed    bool
	width     int
	height    int
}

func NewModel(members []string, ledger ledgerPort, feed feedPort, summary summaryPort) Model {
	author := ""
	if len(members) > 0 {
		author = members[0]
	}
	return Model{
		ledger:      ledger,
		feed:        feed,
		summary:     summary,
		members:     append([]string(nil), members...),
		author:      author,
		stagesView:  stagesview.New(ledger),
		feedView:    feedview.New(feed),
		summaryView: summaryview.New(summary),
		activeTab:   tabStages,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.stagesView.Init(), m.feedView.Init(), m.summaryView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Data messages go to their owning view whichever tab is showing, so the
	// clock keeps ticking and reloads land in the background.
	switch data := msg.(type) {
	case stagesview.TickMsg, stagesview.DisplayMsg, stagesview.OverviewLoadedMsg:
		var cmd tea.Cmd
		m.stagesView, cmd = m.stagesView.Update(data)
		return m, cmd
	case feedview.LoadedMsg:
		var cmd tea.Cmd
		m.feedView, cmd = m.feedView.Update(data)
		return m, cmd
	case summaryview.GeneratedMsg:
		var cmd tea.Cmd
		m.summaryView, cmd = m.summaryView.Update(data)
		if data.Err != nil {
			m.setStatus("", data.Err)
		}
		return m, cmd
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case actionDoneMsg:
		m.setStatus(msg.status, msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m, tea.Batch(m.stagesView.Refresh(), m.feedView.Refresh())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready", nil)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabStages && m.stagesView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "n":
			return m, m.palette.OpenWith("note ")
		case "s":
			if m.stagesView.Running() {
				return m, m.stopCmd()
			}
			stage, ok := m.stagesView.SelectedStage()
			if !ok {
				m.setStatus("no stage selected", nil)
				return m, nil
			}
			return m, m.startCmd(stage)
		case "r":
			return m, m.resetCmd()
		case "m":
			next := m.feedView.NextWorkload(m.author)
			if next == "" {
				m.setStatus("workloads not loaded yet", nil)
				return m, nil
			}
			return m, m.workloadCmd(next)
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabStages:
		m.stagesView, tabCmd = m.stagesView.Update(msg)
	case tabFeed:
		m.feedView, tabCmd = m.feedView.Update(msg)
	case tabSummary:
		m.summaryView, tabCmd = m.summaryView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabStages:
		return m.stagesView.View()
	case tabFeed:
		return m.feedView.View()
	case tabSummary:
		return m.summaryView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "kitchen  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.failed {
		left = theme.Error.Render(left)
	}
	if m.author != "" {
		left = theme.Hot.Render("@"+m.author) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m *Model) setStatus(status string, err error) {
	m.failed = err != nil
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = status
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}
	command, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch command {
	case "timer:start":
		stage := rest
		if stage == "" {
			selected, ok := m.stagesView.SelectedStage()
			if !ok {
				m.setStatus("usage: timer:start <stage>", nil)
				return m, nil
			}
			stage = selected
		}
		return m, m.startCmd(stage)

	case "timer:stop":
		return m, m.stopCmd()

	case "timer:reset":
		return m, m.resetCmd()

	case "ledger:clear":
		return m, m.clearCmd(rest)

	case "note":
		if rest == "" {
			m.setStatus("usage: note <text>", nil)
			return m, nil
		}
		return m, m.postCmd(rest)

	case "mood":
		if rest == "" {
			m.setStatus("usage: mood <light|steady|busy|swamped>", nil)
			return m, nil
		}
		return m, m.workloadCmd(rest)

	case "as":
		member, ok := m.resolveMember(rest)
		if !ok {
			m.setStatus(fmt.Sprintf("unknown member %q (members: %s)", rest, strings.Join(m.members, ", ")), nil)
			return m, nil
		}
		m.author = member
		m.setStatus("acting as "+member, nil)
		return m, nil

	case "summary":
		m.activeTab = tabSummary
		m.setStatus("summary refreshed", nil)
		return m, m.summaryView.Generate(rest)

	case "summary:export":
		return m, m.exportCmd(rest)

	default:
		m.setStatus("unknown command: "+command, nil)
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) resolveMember(name string) (string, bool) {
	if len(m.members) == 0 {
		return name, name != ""
	}
	for _, member := range m.members {
		if strings.EqualFold(member, name) {
			return member, true
		}
	}
	return "", false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.stagesView, _ = m.stagesView.Update(sz)
	m.feedView, _ = m.feedView.Update(sz)
	m.summaryView, _ = m.summaryView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) startCmd(stage string) tea.Cmd {
	ledger, author := m.ledger, m.author
	return func() tea.Msg {
		out, err := ledger.Start(context.Background(), stage, author)
		return actionDoneMsg{status: "timer started on " + out.StageName, err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		out, err := ledger.Stop(context.Background())
		return actionDoneMsg{status: fmt.Sprintf("logged %.2f h on %s (total %.2f h)", out.Hours, out.StageName, out.TotalHours), err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		out, err := ledger.Reset(context.Background())
		return actionDoneMsg{status: "timer reset, " + out.StageName + " ledger unchanged", err: err}
	}
}

func (m Model) clearCmd(stage string) tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		_, err := ledger.ClearLedger(context.Background(), stage)
		status := "cleared every stage"
		if stage != "" {
			status = "cleared " + stage
		}
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) postCmd(text string) tea.Cmd {
	feed, author := m.feed, m.author
	return func() tea.Msg {
		out, err := feed.Post(context.Background(), author, text)
		return actionDoneMsg{status: fmt.Sprintf("note #%d posted", out.Seq), err: err}
	}
}

func (m Model) workloadCmd(value string) tea.Cmd {
	feed, author := m.feed, m.author
	return func() tea.Msg {
		out, err := feed.SetWorkload(context.Background(), author, value)
		return actionDoneMsg{status: out.Member + " is " + out.Value, err: err}
	}
}

func (m Model) exportCmd(findings string) tea.Cmd {
	summary := m.summary
	return func() tea.Msg {
		out, err := summary.Export(context.Background(), findings, "")
		return actionDoneMsg{status: "summary written to " + out.Path, err: err}
	}
}
