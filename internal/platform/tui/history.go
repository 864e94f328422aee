package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
	"github.com/vovakirdan/mindgym/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the sidebar
	maxRows            = 100 // Max rows to load
)

// HistoryStore is the read side of session storage.
type HistoryStore interface {
	RecentSessions(limit int) ([]storage.SessionRecord, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyView is one page of the history screen: the session list or one
// game's best results.
type historyView struct {
	gameID string // empty for the session list
	title  string
	scored bool
}

// HistoryModel is the Bubble Tea model for the history screen.
type HistoryModel struct {
	views       []historyView
	cursor      int
	store       HistoryStore
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	views := []historyView{{title: "Sessions"}}
	for _, g := range registry.List() {
		views = append(views, historyView{gameID: g.ID, title: g.Title, scored: g.Scored})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		views:       views,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns for the current view.
func (m *HistoryModel) columns() []table.Column {
	if m.views[m.cursor].gameID == "" {
		return []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Time", Width: 7},
			{Title: "Score", Width: 12},
			{Title: "Lines", Width: 6},
			{Title: "Snake", Width: 6},
			{Title: "Games", Width: 24},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: 18},
	}
}

// createTable creates a new table for the current view.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows for the current view.
func (m *HistoryModel) load() {
	m.table = m.createTable()
	m.rows = nil
	m.loadErr = nil

	if m.store != nil {
		v := m.views[m.cursor]
		if v.gameID == "" {
			m.rows, m.loadErr = sessionRows(m.store)
		} else {
			m.rows, m.loadErr = scoreRows(m.store, v)
		}
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func sessionRows(store HistoryStore) ([]table.Row, error) {
	records, err := store.RecentSessions(maxRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.StartedAt.Format("Jan 02 15:04"),
			formatDuration(r.Duration),
			formatScore(core.Score{Score: r.Score, Total: r.Total}),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.SnakeScore),
			strings.Join(r.Games, ","),
		}
	}
	return rows, nil
}

func scoreRows(store HistoryStore, v historyView) ([]table.Row, error) {
	scores, err := store.TopScores(v.gameID, maxRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		score := fmt.Sprintf("%d", s.Score)
		if v.scored {
			score = formatScore(core.Score{Score: s.Score, Total: s.Total})
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			score,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows, nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.views) - 1
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("HISTORY - %s", m.views[m.cursor].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the table with a sidebar listing the views.
func (m HistoryModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("View\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = titleStyle
		}

		name := v.title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := boxStyle.Width(sidebarWidth).Render(sidebar.String())
	tableRendered := boxStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout shows the current view name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.views[m.cursor].title), m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nFinish a session to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store HistoryStore, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, err := finalAs[HistoryModel](finalModel)
	if err != nil {
		return false, err
	}

	return m.IsGoingBack(), nil
}
