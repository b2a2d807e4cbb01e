package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-chordpad/detect"
	"go-chordpad/grid"
	"go-chordpad/midi"
	"go-chordpad/synth"
	"go-chordpad/theory"
	"go-chordpad/widgets"
)

var keyHelp = []widgets.KeySection{
	{Title: "Chord", Keys: []widgets.KeyBinding{
		{Key: "←/→", Desc: "root"},
		{Key: "↑/↓", Desc: "chord type"},
		{Key: "tab", Desc: "next inversion"},
		{Key: "c x v", Desc: "show chord / scale / inversion"},
		{Key: "s/S", Desc: "scale"},
	}},
	{Title: "Grid", Keys: []widgets.KeyBinding{
		{Key: "o/O", Desc: "octave up/down"},
		{Key: "</>", Desc: "capo down/up"},
		{Key: "0", Desc: "reset capo"},
		{Key: "n", Desc: "note names"},
		{Key: "r", Desc: "resend LEDs"},
	}},
	{Title: "Sound", Keys: []widgets.KeyBinding{
		{Key: "i/I", Desc: "instrument"},
		{Key: "[ ]", Desc: "volume"},
		{Key: "+/-", Desc: "tempo"},
		{Key: "m", Desc: "metronome"},
	}},
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Controller.Snapshot()
	disp := m.Controller.ChordDisplay()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	chordStyle := lipgloss.NewStyle().Foreground(m.Theme.FG()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	okStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())

	// Header
	instrument := snap.Instrument
	if p, err := synth.Lookup(snap.Instrument); err == nil {
		instrument = p.Label
	}
	device := warnStyle.Render(string(m.Theme.Symbols.NoDevice) + " no device")
	if snap.Connected {
		device = okStyle.Render("LP:X")
	}
	metro := ""
	if snap.Metronome {
		metro = "  " + string(m.Theme.Symbols.Beat)
	}
	header := headerStyle.Render(fmt.Sprintf("go-chordpad  %s  %3dbpm  vol %3.0f%%%s",
		instrument, snap.BPM, snap.Volume*100, metro)) + "  " + device

	// Pad grid and chord readout side by side
	gridView := widgets.RenderPadGrid(m.padCells(), m.topRow(), m.rightCol(), m.labels)

	var info []string
	info = append(info, chordStyle.Render(disp.ChordName))
	if !snap.ShowChord {
		info[0] += dimStyle.Render("  (hidden)")
	}
	info = append(info, disp.Notes(), dimStyle.Render(disp.IntervalLine()), "", disp.KeyLabel())
	if snap.Capo != 0 {
		info = append(info, dimStyle.Render(fmt.Sprintf("capo %+d", snap.Capo)))
	}
	info = append(info, "", "Playing: "+m.detected(snap.Held))
	info = append(info, "", m.legend())
	infoView := lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(info, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, gridView, infoView)

	// Status line
	var status string
	switch {
	case snap.LastError != nil:
		status = warnStyle.Render(snap.LastError.Error())
	case snap.LastControl != "":
		status = dimStyle.Render(snap.LastControl)
	}

	help := dimStyle.Render("←→:root ↑↓:chord tab:inv s:scale i:instr o/O:oct </>:capo m:metro ?:help q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	if status != "" {
		out.WriteString(status)
		out.WriteString("\n")
	}
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(keyHelp))
		out.WriteString("\n")
	}
	out.WriteString(help)
	return out.String()
}

func (m Model) padCells() [8][8]widgets.PadCell {
	pads := m.Controller.Pads()
	colors := m.Controller.Colors()
	sym := m.Theme.Symbols

	var cells [8][8]widgets.PadCell
	for i, p := range pads {
		c := colors[i]
		s := sym.Pad
		switch c {
		case midi.ColorOff:
			s = sym.PadOff
		case midi.ColorPressed:
			s = sym.Held
		}
		cells[p.Row][p.Col] = widgets.PadCell{
			Color:  m.Theme.LED(c),
			Symbol: s,
			Label:  theory.NoteName(p.PitchClass),
		}
	}
	return cells
}

// topArrows label the first four top-row buttons on the grid
var topArrows = [4]string{"▲", "▼", "◄", "►"}

func (m Model) topRow() *[8]widgets.PadCell {
	var row [8]widgets.PadCell
	for i := range row {
		c := midi.ColorFnIdle
		label := ""
		if i < len(topArrows) {
			c = midi.ColorFnActive
			label = topArrows[i]
		}
		row[i] = widgets.PadCell{Color: m.Theme.LED(c), Symbol: m.Theme.Symbols.Button, Label: label}
	}
	return &row
}

func (m Model) rightCol() *[8]widgets.PadCell {
	var col [8]widgets.PadCell
	for i := range col {
		col[i] = widgets.PadCell{Color: m.Theme.Muted(), Symbol: m.Theme.Symbols.Button}
	}
	return &col
}

// subsetMark prefixes readings that leave some held notes unexplained
const subsetMark = "~"

// detected names the held notes. Exact readings are shown bold; subset
// readings are dimmed and marked.
func (m Model) detected(held []int) string {
	matches := detect.Detect(held)
	if len(matches) == 0 {
		var names []string
		for _, n := range held {
			names = append(names, theory.NoteWithOctave(n))
		}
		if len(names) == 0 {
			return "-"
		}
		return strings.Join(names, " ")
	}

	exactStyle := lipgloss.NewStyle().Foreground(m.Theme.FG()).Bold(true)
	subsetStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	names := make([]string, len(matches))
	for i, match := range matches {
		if match.Exact {
			names[i] = exactStyle.Render(match.Name())
		} else {
			names[i] = subsetStyle.Render(subsetMark + match.Name())
		}
	}
	return strings.Join(names, "  ")
}

func (m Model) legend() string {
	item := func(c midi.Color, name string) string {
		return widgets.RenderLegendItem(widgets.PadCell{Color: m.Theme.LED(c), Symbol: m.Theme.Symbols.Pad}, name, "")
	}
	buttons := strings.TrimSpace(strings.Join(grid.TopRowLabels[:], " "))
	return strings.Join([]string{
		item(midi.ColorRoot, "root"),
		item(midi.ColorBass, "bass"),
		item(midi.ColorChord, "chord"),
		item(midi.ColorScale, "scale"),
		item(midi.ColorFnActive, buttons),
		"  " + subsetMark + " partial match",
	}, "\n")
}
