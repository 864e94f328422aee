package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/games/counting"
	"github.com/vovakirdan/mindgym/internal/games/nback"
	"github.com/vovakirdan/mindgym/internal/games/pasat"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// Timer step per key press, in milliseconds.
const (
	tetrisTimerStep = 100
	snakeTimerStep  = 10
	roundTimerStep  = 500
)

// MenuKeyMap defines the key bindings for the settings menu.
type MenuKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Faster    key.Binding
	Slower    key.Binding
	LevelDown key.Binding
	LevelUp   key.Binding
	Colors    key.Binding
	Icons     key.Binding
	Numbers   key.Binding
	Start     key.Binding
	History   key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Faster, k.Slower, k.Start, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Faster, k.Slower, k.LevelDown, k.LevelUp},
		{k.Colors, k.Icons, k.Numbers},
		{k.Start, k.History, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Faster: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("←/-", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("right", "+", "="),
			key.WithHelp("→/+", "slower"),
		),
		LevelDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "easier"),
		),
		LevelUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "harder"),
		),
		Colors: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "n-back colors"),
		),
		Icons: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "n-back icons"),
		),
		Numbers: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "n-back numbers"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the settings picker.
type MenuModel struct {
	games    []registry.GameInfo
	cursor   int
	settings config.Settings
	keys     MenuKeyMap
	help     help.Model
	width    int
	height   int
	message  string // shown when the settings cannot start a session
	quitting bool
	start    bool
	history  bool
}

// NewMenuModel creates a new menu model editing settings.
func NewMenuModel(settings config.Settings, width, height int) MenuModel {
	return MenuModel{
		games:    registry.List(),
		settings: settings.Normalize(),
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	id := m.selectedID()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.settings = m.settings.Toggle(id)

	case key.Matches(msg, m.keys.Faster):
		m.settings = adjustTimer(m.settings, id, -1)

	case key.Matches(msg, m.keys.Slower):
		m.settings = adjustTimer(m.settings, id, 1)

	case key.Matches(msg, m.keys.LevelDown):
		m.settings = adjustLevel(m.settings, id, -1)

	case key.Matches(msg, m.keys.LevelUp):
		m.settings = adjustLevel(m.settings, id, 1)

	case key.Matches(msg, m.keys.Colors):
		m.settings.NBack.Colors = !m.settings.NBack.Colors

	case key.Matches(msg, m.keys.Icons):
		m.settings.NBack.Icons = !m.settings.NBack.Icons

	case key.Matches(msg, m.keys.Numbers):
		m.settings.NBack.Numbers = !m.settings.NBack.Numbers

	case key.Matches(msg, m.keys.Start):
		if err := m.settings.Validate(); err != nil {
			m.message = "enable at least one game"
			return m, nil
		}
		m.start = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.History):
		m.history = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) selectedID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// adjustTimer moves a game's timer by steps and clamps the result.
func adjustTimer(s config.Settings, id string, steps int) config.Settings {
	switch id {
	case tetris.ID:
		s.Tetris.Timer += steps * tetrisTimerStep
	case snake.ID:
		s.Snake.Timer += steps * snakeTimerStep
	case nback.ID:
		s.NBack.Timer += steps * roundTimerStep
	case pasat.ID:
		s.Pasat.Timer += steps * roundTimerStep
	case counting.ID:
		s.Counting.Timer += steps * roundTimerStep
	}
	return s.Normalize()
}

// adjustLevel changes a game's difficulty: N for N-back and PASAT, the
// largest count for counting.
func adjustLevel(s config.Settings, id string, delta int) config.Settings {
	switch id {
	case nback.ID:
		s.NBack.N += delta
	case pasat.ID:
		s.Pasat.N += delta
	case counting.ID:
		s.Counting.Max += delta
	}
	return s.Normalize()
}

// gameDetails summarizes a game's settings for the menu.
func gameDetails(s config.Settings, id string) string {
	switch id {
	case tetris.ID:
		return fmt.Sprintf("%dms", s.Tetris.Timer)
	case snake.ID:
		return fmt.Sprintf("%dms", s.Snake.Timer)
	case nback.ID:
		mods := []string{"pos"}
		if s.NBack.Colors {
			mods = append(mods, "col")
		}
		if s.NBack.Icons {
			mods = append(mods, "ico")
		}
		if s.NBack.Numbers {
			mods = append(mods, "num")
		}
		return fmt.Sprintf("N=%d %dms %s", s.NBack.N, s.NBack.Timer, strings.Join(mods, "+"))
	case pasat.ID:
		return fmt.Sprintf("N=%d %dms", s.Pasat.N, s.Pasat.Timer)
	case counting.ID:
		return fmt.Sprintf("%d-%d %dms", s.Counting.Min, s.Counting.Max, s.Counting.Timer)
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  M I N D G Y M  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick the games for this session", m.width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ]"
		if m.settings.Enabled(g.ID) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %-16s %s", cursor, check, g.Title, gameDetails(m.settings, g.ID))
		if i == m.cursor {
			line = titleStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.games) > 0 {
		g := m.games[m.cursor]
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(g.Description), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render("keys: "+g.Controls), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("link: "+config.Encode(m.settings)), m.width))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(badStyle.Render(m.message), m.width))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Settings returns the edited settings.
func (m MenuModel) Settings() config.Settings {
	return m.settings
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStart returns true if user started a session.
func (m MenuModel) WantsStart() bool {
	return m.start
}

// WantsHistory returns true if user requested the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.history
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Settings     config.Settings
	Start        bool
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(settings config.Settings, width, height int) (MenuResult, error) {
	model := NewMenuModel(settings, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Settings: settings}, err
	}

	m, err := finalAs[MenuModel](finalModel)
	if err != nil {
		return MenuResult{Settings: settings, Quit: true}, err
	}

	result := MenuResult{
		Settings:     m.Settings(),
		Start:        m.WantsStart(),
		WantsHistory: m.WantsHistory(),
		Quit:         m.IsQuitting(),
	}
	if !result.Start && !result.WantsHistory {
		result.Quit = true
	}
	return result, nil
}
