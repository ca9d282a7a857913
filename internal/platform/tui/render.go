package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// colorCodes are the ANSI colors behind each core.Color.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette holds the styles for one output. SSH sessions get their own so
// colors follow the remote terminal's profile.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
	note   lipgloss.Style
	alert  lipgloss.Style
}

// NewPalette builds a palette for r. A nil renderer uses the local terminal.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		styles: make(map[core.Color]lipgloss.Style, len(colorCodes)),
		plain:  r.NewStyle(),
		note:   r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		alert:  r.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true),
	}
	for c, code := range colorCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.plain
}

// Render converts a screen into styled text, one style run per stretch of
// same-colored cells.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

// Banner renders a one-line notification across the given width.
func (p *Palette) Banner(text string, width int, failed bool) string {
	st := p.note
	if failed {
		st = p.alert
	}
	return st.Width(width).MaxWidth(width).Render(" " + text)
}

// RenderScreen renders s for the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

var defaultPalette = NewPalette(nil)
