package nback

import "strconv"

// Modality names. They double as the submission values.
const (
	Positions = "positions"
	Colors    = "colors"
	Icons     = "icons"
	Numbers   = "numbers"
)

// Modality is one stimulus channel and the values it can take.
type Modality struct {
	Name   string
	Values []string
}

// Value returns the display value at index i, or "" when out of range.
func (m Modality) Value(i int) string {
	if i < 0 || i >= len(m.Values) {
		return ""
	}
	return m.Values[i]
}

// Cells of the 3×3 grid, row-major.
var PositionValues = sequence(0, 9)

var ColorValues = []string{
	"#C0392B",
	"#9B59B6",
	"#5499C7",
	"#1ABC9C",
	"#F1C40F",
	"#BA4A00",
	"#2E4053",
}

var IconValues = []string{"✦", "⚠", "⚓", "◎", "✪", "♪", "▣", "◉", "⚒"}

var NumberValues = sequence(1, 13)

func sequence(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// Modalities builds the stimulus channels for a session. Positions are
// always present; the rest are toggled.
func Modalities(colors, icons, numbers bool) []Modality {
	mods := []Modality{{Name: Positions, Values: PositionValues}}
	if colors {
		mods = append(mods, Modality{Name: Colors, Values: ColorValues})
	}
	if icons {
		mods = append(mods, Modality{Name: Icons, Values: IconValues})
	}
	if numbers {
		mods = append(mods, Modality{Name: Numbers, Values: NumberValues})
	}
	return mods
}
