package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/games/counting"
	"github.com/vovakirdan/mindgym/internal/games/nback"
	"github.com/vovakirdan/mindgym/internal/games/pasat"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
)

// Border colours carry feedback: neutral, success, failure.
var (
	borderNeutral = lipgloss.Color("240")
	borderGood    = lipgloss.Color("34")
	borderBad     = lipgloss.Color("160")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	goodStyle = lipgloss.NewStyle().Foreground(borderGood)
	badStyle  = lipgloss.NewStyle().Foreground(borderBad)
)

// blockStyles maps board cell values to styles. Index 8 is the shadow.
var blockStyles = func() []lipgloss.Style {
	colors := []string{
		"#333333",
		"#00ffff",
		"#ffff00",
		"#800080",
		"#00ff00",
		"#ff0000",
		"#ff7f00",
		"#0000ff",
		"#7f7f7f",
	}
	out := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return out
}()

const (
	blockCell = "██"
	emptyCell = "· "
)

var (
	snakeHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	snakeBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	staleFoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dotStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// Food with fewer steps left than this is drawn as about to expire.
const foodWarnSteps = 20

// panel frames a game view with a title and a feedback border.
func panel(title, body string, border lipgloss.Color) string {
	return panelStyle.
		BorderForeground(border).
		Render(titleStyle.Render(title) + "\n" + body)
}

// renderGrid draws a w×h grid of two-column cells. cell returns the text
// and style for a coordinate. Adjacent cells with the same style are
// rendered as one run to keep escape sequences down.
func renderGrid(w, h int, cell func(x, y int) (string, lipgloss.Style)) string {
	var sb strings.Builder
	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle lipgloss.Style
		for x := range w {
			text, style := cell(x, y)
			if x > 0 && !sameStyle(style, runStyle) {
				sb.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
			runStyle = style
			run.WriteString(text)
		}
		sb.WriteString(runStyle.Render(run.String()))
	}
	return sb.String()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground()
}

// renderTetris draws the board with the falling piece and its shadow.
func renderTetris(s tetris.State) string {
	board := s.View()
	grid := renderGrid(tetris.Width, tetris.Height, func(x, y int) (string, lipgloss.Style) {
		v := board[y][x]
		if v <= tetris.Empty || v >= len(blockStyles) {
			return emptyCell, blockStyles[tetris.Empty]
		}
		if v == tetris.Shadow {
			return "░░", blockStyles[tetris.Shadow]
		}
		return blockCell, blockStyles[v]
	})

	status := fmt.Sprintf("lines %d", s.Lines)
	border := borderNeutral
	if s.Over {
		status += "  " + badStyle.Render("game over, r to restart")
		border = borderBad
	}
	return panel("Falling Blocks", grid+"\n"+status, border)
}

// renderSnake draws the toroidal field.
func renderSnake(s snake.State) string {
	body := make(map[core.Point]bool, len(s.Body))
	for i, p := range s.Body {
		body[p] = i == 0
	}
	food := make(map[core.Point]snake.Food, len(s.Food))
	for _, f := range s.Food {
		food[f.Point] = f
	}

	grid := renderGrid(s.W, s.H, func(x, y int) (string, lipgloss.Style) {
		p := core.Pt(x, y)
		if head, ok := body[p]; ok {
			if head {
				return blockCell, snakeHeadStyle
			}
			return blockCell, snakeBodyStyle
		}
		if f, ok := food[p]; ok {
			if f.Expires > 0 && f.Expires < foodWarnSteps {
				return "◆ ", staleFoodStyle
			}
			return "◆ ", foodStyle
		}
		return emptyCell, blockStyles[tetris.Empty]
	})

	border := borderNeutral
	if s.Over || len(s.ExpiredFood) > 0 {
		border = borderBad
	}
	return panel("Snake", fmt.Sprintf("%s\nscore %d  length %d", grid, s.Score, s.N), border)
}

// nbackButtons lists the modality buttons in display order with their
// keys.
var nbackButtons = []struct {
	modality string
	key      string
}{
	{nback.Positions, "h"},
	{nback.Colors, "j"},
	{nback.Icons, "k"},
	{nback.Numbers, "l"},
}

// renderNBack draws the 3×3 stimulus grid and the modality buttons.
func renderNBack(s nback.State) string {
	pos := -1
	if v, ok := s.Display(nback.Positions); ok {
		pos, _ = strconv.Atoi(v)
	}
	mark := "■"
	if v, ok := s.Display(nback.Icons); ok {
		mark = v
	}
	if v, ok := s.Display(nback.Numbers); ok {
		mark = v
	}
	markStyle := lipgloss.NewStyle().Bold(true)
	if v, ok := s.Display(nback.Colors); ok {
		markStyle = markStyle.Foreground(lipgloss.Color(v))
	}

	cellStyle := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center)
	var rows []string
	for y := range 3 {
		var cells []string
		for x := range 3 {
			text := dimStyle.Render("·")
			if y*3+x == pos {
				text = markStyle.Render(mark)
			}
			cells = append(cells, cellStyle.Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := strings.Join(rows, "\n\n")

	last, scored := s.Last()
	var buttons []string
	for _, b := range nbackButtons {
		if !hasModality(s, b.modality) {
			continue
		}
		label := b.key + " " + b.modality
		switch {
		case scored && slices.Contains(last.Matched, b.modality):
			label = goodStyle.Render(label)
		case scored && (slices.Contains(last.Missing, b.modality) || slices.Contains(last.Wrong, b.modality)):
			label = badStyle.Render(label)
		case s.Pending != nil && slices.Contains(s.Pending.Value, b.modality):
			label = titleStyle.Render(label)
		default:
			label = dimStyle.Render(label)
		}
		buttons = append(buttons, label)
	}

	border := borderNeutral
	if scored {
		border = feedbackBorder(last.Correct)
	}
	title := fmt.Sprintf("%d-Back", s.N)
	return panel(title, grid+"\n\n"+strings.Join(buttons, "  "), border)
}

// renderPasat shows the newest number and the pending answer.
func renderPasat(s pasat.State) string {
	current := "-"
	if len(s.Stack) > 0 {
		current = strconv.Itoa(s.Current())
	}
	body := fmt.Sprintf("%s\n\nsum of the last %d, last digit\nanswer: %s",
		titleStyle.Render(current), s.N, pendingDigit(s.Pending))
	return panel("PASAT", body, historyBorder(s.History))
}

// renderCounting draws the dot field.
func renderCounting(s counting.State) string {
	dots := make(map[core.Point]bool)
	for _, p := range s.Layout() {
		dots[core.Pt(p.X-1, p.Y-1)] = true
	}
	grid := renderGrid(counting.FieldWidth, counting.FieldHeight, func(x, y int) (string, lipgloss.Style) {
		if dots[core.Pt(x, y)] {
			return "● ", dotStyle
		}
		return "  ", dimStyle
	})
	body := fmt.Sprintf("%s\ncount the dots, last digit\nanswer: %s", grid, pendingDigit(s.Pending))
	return panel("Counting", body, historyBorder(s.History))
}

func pendingDigit(p *core.Submission[int]) string {
	if p == nil {
		return dimStyle.Render("_")
	}
	return titleStyle.Render(strconv.Itoa(p.Value))
}

func historyBorder(h []core.Submission[int]) lipgloss.Color {
	if len(h) == 0 {
		return borderNeutral
	}
	return feedbackBorder(h[len(h)-1].Correct)
}

func feedbackBorder(correct bool) lipgloss.Color {
	if correct {
		return borderGood
	}
	return borderBad
}

func hasModality(s nback.State, name string) bool {
	for _, m := range s.Modalities {
		if m.Name == name {
			return true
		}
	}
	return false
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// formatScore renders a score with its accuracy.
func formatScore(sc core.Score) string {
	if sc.Total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", sc.Score, sc.Total, sc.Accuracy()*100)
}
