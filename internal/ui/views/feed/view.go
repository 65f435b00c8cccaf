package feed

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	feeddto "kitchen/internal/modules/feed/dto"
	"kitchen/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, limit int) ([]feeddto.NoteOutput, error)
	Board(ctx context.Context) (feeddto.BoardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Notes []feeddto.NoteOutput
	Board feeddto.BoardOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows the note feed, newest at the bottom, beside the workload board.
type Model struct {
	port   Port
	notes  viewport.Model
	data   LoadedMsg
	now    func() time.Time
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port, notes: viewport.New(0, 0), now: time.Now}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.Width = max(m.width*7/10-4, 10)
		m.notes.Height = max(m.height-4, 1)
		m.notes.SetContent(m.renderNotes())

	case LoadedMsg:
		if msg.Err != nil {
			m.data.Err = msg.Err
		} else {
			m.data = msg
		}
		m.notes.SetContent(m.renderNotes())
		m.notes.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	notesW := m.width * 7 / 10
	boardW := m.width - notesW

	notesPane := theme.Pane.
		Width(max(notesW-4, 10)).
		Height(max(m.height-2, 1)).
		Render(theme.Title.Render("Notes") + "\n" + m.notes.View())
	boardPane := theme.Pane.
		Width(max(boardW-4, 10)).
		Height(max(m.height-2, 1)).
		Render(m.renderBoard())
	return lipgloss.JoinHorizontal(lipgloss.Top, notesPane, boardPane)
}

// Refresh reloads notes and workloads.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		notes, err := m.port.List(ctx, 0)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		board, err := m.port.Board(ctx)
		return LoadedMsg{Notes: notes, Board: board, Err: err}
	}
}

// Workload returns member's current workload, or "" when unset.
func (m Model) Workload(member string) string {
	for _, w := range m.data.Board.Workloads {
		if strings.EqualFold(w.Member, member) {
			return w.Value
		}
	}
	return ""
}

// NextWorkload returns the value after member's current one, cycling
// through the allowed set.
func (m Model) NextWorkload(member string) string {
	allowed := m.data.Board.Allowed
	if len(allowed) == 0 {
		return ""
	}
	current := m.Workload(member)
	for i, v := range allowed {
		if v == current {
			return allowed[(i+1)%len(allowed)]
		}
	}
	return allowed[0]
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderNotes() string {
	if m.data.Err != nil {
		return theme.Error.Render("error: " + m.data.Err.Error())
	}
	if len(m.data.Notes) == 0 {
		return theme.Muted.Render("No notes yet. Press n to post one.")
	}
	var sb strings.Builder
	now := m.now()
	for _, n := range m.data.Notes {
		sb.WriteString(theme.Hot.Render(n.Author) + " " + theme.Muted.Render(humanize.RelTime(n.PostedAt, now, "ago", "from now")) + "\n")
		sb.WriteString(lipgloss.NewStyle().Width(max(m.notes.Width, 10)).Render(n.Text) + "\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderBoard() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Workload") + "\n")
	members := m.data.Board.Members
	if len(members) == 0 {
		for _, w := range m.data.Board.Workloads {
			members = append(members, w.Member)
		}
	}
	for _, member := range members {
		value := m.Workload(member)
		shown := value
		if shown == "" {
			shown = "unset"
		}
		sb.WriteString(member + "  " + lipgloss.NewStyle().Foreground(theme.WorkloadColor(value)).Render("● "+shown) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("n: note  m: cycle mood"))
	return sb.String()
}
