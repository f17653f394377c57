package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EliasCampos/snake-of-time/internal/core"
	"github.com/EliasCampos/snake-of-time/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// palette holds the entity colors for one rendering mode.
type palette struct {
	head core.Color
	tail core.Color
	food core.Color
}

var (
	// Forward time: warm snake, golden food
	normalPalette = palette{head: core.ColorOrange, tail: core.ColorGreen, food: core.ColorYellow}
	// Rewinding: everything shifts to the cold end
	reversedPalette = palette{head: core.ColorMagenta, tail: core.ColorRed, food: core.ColorBlue}
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderSession draws the play field into the screen buffer: border box,
// food, then the snake. One terminal cell covers one SegmentSize square of
// the simulation, so the snake is one cell per segment while the larger food
// spans every cell it overlaps.
func renderSession(s *game.Session, screen *core.Screen) {
	screen.Clear()

	area := s.Area()
	gridW := area.W / game.SegmentSize
	gridH := area.H / game.SegmentSize
	screen.DrawBox(core.NewRect(0, 0, gridW+2, gridH+2))

	pal := normalPalette
	if s.IsReversed() {
		pal = reversedPalette
	}

	drawPixelRect(screen, area, s.Food(), '▒', pal.food)

	// Tail first, head last: segments stack on one cell at round start and
	// after growth, and the head color must win the cell.
	segs := s.Segments()
	for i := len(segs) - 1; i >= 0; i-- {
		color := pal.tail
		if i == 0 {
			color = pal.head
		}
		cx := (segs[i].X - area.X) / game.SegmentSize
		cy := (segs[i].Y - area.Y) / game.SegmentSize
		screen.SetWithColor(cx+1, cy+1, '█', color)
	}
}

// drawPixelRect fills every grid cell the pixel rectangle overlaps.
// The +1 offsets skip the border row and column.
func drawPixelRect(screen *core.Screen, area, r core.Rect, fill rune, color core.Color) {
	x0 := (r.X - area.X) / game.SegmentSize
	y0 := (r.Y - area.Y) / game.SegmentSize
	x1 := (r.X + r.W - 1 - area.X) / game.SegmentSize
	y1 := (r.Y + r.H - 1 - area.Y) / game.SegmentSize

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			screen.SetWithColor(cx+1, cy+1, fill, color)
		}
	}
}

// drawGameOver overlays the end-of-round message on the play field.
func drawGameOver(s *game.Session, screen *core.Screen) {
	mid := screen.Height() / 2
	screen.DrawTextCentered(mid-1, " G A M E   O V E R ")
	screen.DrawTextCentered(mid, fmt.Sprintf("score: %d", s.Score()))
	screen.DrawTextCentered(mid+1, "enter: play again   esc: menu   q: quit")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
