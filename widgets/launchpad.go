package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadCell is one rendered button: a colored symbol, optionally followed by
// a short label (note name)
type PadCell struct {
	Color  lipgloss.Color
	Symbol rune
	Label  string
}

// cellWidth fits a symbol and a two-character note name
const cellWidth = 4

// RenderPad renders a single colored pad
func RenderPad(c PadCell) string {
	style := lipgloss.NewStyle().Foreground(c.Color)
	return style.Render(string(c.Symbol))
}

func renderCell(c PadCell, labels bool) string {
	if !labels {
		return RenderPad(c) + " "
	}
	style := lipgloss.NewStyle().Foreground(c.Color)
	return style.Render(fmt.Sprintf("%-*s", cellWidth, string(c.Symbol)+c.Label))
}

// RenderPadRow renders a row of colored pads with spacing
func RenderPadRow(cells []PadCell, labels bool) string {
	var out strings.Builder
	for _, c := range cells {
		out.WriteString(renderCell(c, labels))
	}
	return strings.TrimRight(out.String(), " ")
}

// RenderPadGrid renders the 8x8 grid as the device shows it: row 7 at top,
// the top button row above it and the right column beside it. grid is
// indexed [row][col] with row 0 at the bottom; right is top to bottom.
func RenderPadGrid(grid [8][8]PadCell, top *[8]PadCell, right *[8]PadCell, labels bool) string {
	var lines []string
	if top != nil {
		lines = append(lines, RenderPadRow(top[:], labels))
	}
	for row := 7; row >= 0; row-- {
		var line strings.Builder
		for col := 0; col < 8; col++ {
			line.WriteString(renderCell(grid[row][col], labels))
		}
		if right != nil {
			line.WriteString(RenderPad(right[7-row]))
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(c PadCell, name, desc string) string {
	if desc == "" {
		return fmt.Sprintf("  %s %s", RenderPad(c), name)
	}
	return fmt.Sprintf("  %s %s - %s", RenderPad(c), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
