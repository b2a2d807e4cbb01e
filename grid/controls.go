package grid

// Control button addressing (Programmer mode)
const (
	CCOctaveUp   uint8 = 91
	CCOctaveDown uint8 = 92
	CCCapoDown   uint8 = 93
	CCCapoUp     uint8 = 94

	// StatusLED is the logo LED, used for connection/metronome status
	StatusLED uint8 = 99
)

// TopRowCCs are the 8 round buttons above the grid, left to right
var TopRowCCs = [8]uint8{91, 92, 93, 94, 95, 96, 97, 98}

// TopRowLabels for the screen renderer
var TopRowLabels = [8]string{"OCT▲", "OCT▼", "◄", "►", "", "", "", ""}

// RightColNotes are the scene buttons on the right, top to bottom
var RightColNotes = [8]uint8{89, 79, 69, 59, 49, 39, 29, 19}

// TargetKind says what part of the device a message number addresses
type TargetKind int

const (
	TargetUnknown TargetKind = iota
	TargetPad
	TargetTopRow
	TargetRightCol
)

func (k TargetKind) String() string {
	switch k {
	case TargetPad:
		return "pad"
	case TargetTopRow:
		return "top row"
	case TargetRightCol:
		return "right col"
	}
	return "unknown"
}

// Target is the routed address. Index is the pad index (row*8+col) for
// pads and 0-7 for control rows.
type Target struct {
	Kind     TargetKind
	Index    int
	Row, Col int
}

// RouteCC classifies a control-change number
func RouteCC(cc uint8) Target {
	if i := indexOf(TopRowCCs[:], cc); i >= 0 {
		return Target{Kind: TargetTopRow, Index: i}
	}
	if i := indexOf(RightColNotes[:], cc); i >= 0 {
		return Target{Kind: TargetRightCol, Index: i}
	}
	return Target{Kind: TargetUnknown}
}

// RouteNote classifies a note number. Some firmware sends the right column
// as notes, so it is checked before the grid.
func RouteNote(note uint8) Target {
	if i := indexOf(RightColNotes[:], note); i >= 0 {
		return Target{Kind: TargetRightCol, Index: i}
	}
	if row, col, ok := RowCol(note); ok {
		return Target{Kind: TargetPad, Index: row*Cols + col, Row: row, Col: col}
	}
	return Target{Kind: TargetUnknown}
}

func indexOf(list []uint8, v uint8) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
