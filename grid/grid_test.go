package grid

import "testing"

func TestBuildPadsGeometry(t *testing.T) {
	p := BuildPads(36)

	first, _ := p.At(0, 0)
	if first.Semitone != 36 || first.DeviceNote != 11 {
		t.Errorf("pad(0,0) = %+v", first)
	}
	last, _ := p.At(7, 7)
	if last.Semitone != 78 || last.DeviceNote != 88 {
		t.Errorf("pad(7,7) = %+v", last)
	}

	for i, pad := range p {
		if pad.Row != i/Cols || pad.Col != i%Cols {
			t.Fatalf("pad %d at (%d,%d), not row-major", i, pad.Row, pad.Col)
		}
		if pad.DeviceNote%10 == 0 || pad.DeviceNote%10 == 9 {
			t.Errorf("pad %d device note %d is not a grid address", i, pad.DeviceNote)
		}
		if pad.PitchClass != pad.Semitone%12 {
			t.Errorf("pad %d pitch class %d for semitone %d", i, pad.PitchClass, pad.Semitone)
		}
		row, col, ok := RowCol(pad.DeviceNote)
		if !ok || row != pad.Row || col != pad.Col {
			t.Errorf("RowCol(%d) = %d,%d,%v", pad.DeviceNote, row, col, ok)
		}
	}
}

func TestRebuildKeepsPositions(t *testing.T) {
	a := BuildPads(36)
	b := BuildPads(41)
	for i := range a {
		if a[i].Row != b[i].Row || a[i].Col != b[i].Col || a[i].DeviceNote != b[i].DeviceNote {
			t.Fatalf("pad %d moved: %+v vs %+v", i, a[i], b[i])
		}
		if b[i].Semitone-a[i].Semitone != 5 {
			t.Fatalf("pad %d not transposed by 5", i)
		}
	}
}

func TestSemitoneForDeviceNote(t *testing.T) {
	p := BuildPads(36)
	if st, ok := p.SemitoneForDeviceNote(23); !ok || st != 36+5+2 {
		t.Errorf("note 23 -> %d,%v", st, ok)
	}
	for _, n := range []uint8{10, 19, 91, 99, 0} {
		if _, ok := p.SemitoneForDeviceNote(n); ok {
			t.Errorf("note %d should not resolve to a pad", n)
		}
	}
}

func TestSamePitchClass(t *testing.T) {
	p := BuildPads(36)
	for _, pad := range p.SamePitchClass(0) {
		if pad.PitchClass != 0 {
			t.Fatalf("got pad with pc %d", pad.PitchClass)
		}
	}
	// 36 at (0,0); 48 at (1,7),(2,2); 60 at (4,4); 72 at (6,6),(7,1)
	if n := len(p.SamePitchClass(0)); n != 6 {
		t.Errorf("got %d C pads, want 6", n)
	}
}

func TestShiftBounds(t *testing.T) {
	base := 36
	accepted := 0
	for i := 0; i < 8; i++ {
		if CanShiftOctave(base, 1) {
			base += 12
			accepted++
		}
	}
	if accepted >= 8 {
		t.Fatal("every octave shift accepted")
	}
	if base > MaxBaseOctave {
		t.Fatalf("base %d above max", base)
	}
	if CanShiftOctave(base, 1) {
		t.Error("further shift should be rejected")
	}
	if !CanShiftCapo(114, 1) || CanShiftCapo(115, 1) || CanShiftCapo(0, -1) {
		t.Error("capo bounds wrong")
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		got  Target
		kind TargetKind
		idx  int
	}{
		{"cc91", RouteCC(91), TargetTopRow, 0},
		{"cc98", RouteCC(98), TargetTopRow, 7},
		{"cc89", RouteCC(89), TargetRightCol, 0},
		{"cc19", RouteCC(19), TargetRightCol, 7},
		{"cc1", RouteCC(1), TargetUnknown, 0},
		{"note11", RouteNote(11), TargetPad, 0},
		{"note88", RouteNote(88), TargetPad, 63},
		{"note39", RouteNote(39), TargetRightCol, 5},
		{"note99", RouteNote(99), TargetUnknown, 0},
		{"note5", RouteNote(5), TargetUnknown, 0},
	}
	for _, tt := range tests {
		if tt.got.Kind != tt.kind || tt.got.Index != tt.idx {
			t.Errorf("%s: got %v/%d, want %v/%d", tt.name, tt.got.Kind, tt.got.Index, tt.kind, tt.idx)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	all := View{
		Root:      0,
		Chord:     []int{0, 4, 7},
		Scale:     []int{0, 2, 4, 5, 7, 9, 11},
		Bass:      4,
		HasBass:   true,
		ShowChord: true,
		ShowScale: true,
	}
	noChord := all
	noChord.ShowChord = false
	nothing := noChord
	nothing.ShowScale = false

	tests := []struct {
		name string
		pc   int
		v    View
		want Role
	}{
		{"root beats scale", 0, all, RoleRoot},
		{"bass", 4, all, RoleBass},
		{"chord", 7, all, RoleChord},
		{"scale", 2, all, RoleScale},
		{"off", 1, all, RoleOff},
		{"bass hidden falls to scale", 4, noChord, RoleScale},
		{"root without chord", 0, noChord, RoleRoot},
		{"root without toggles", 0, nothing, RoleRoot},
		{"chord tone hidden", 7, nothing, RoleOff},
	}
	for _, tt := range tests {
		if got := Classify(tt.pc, tt.v); got != tt.want {
			t.Errorf("%s: Classify(%d) = %v, want %v", tt.name, tt.pc, got, tt.want)
		}
	}
}

func TestRoles(t *testing.T) {
	p := BuildPads(36)
	roles := Roles(&p, View{Root: 0, Chord: []int{0, 4, 7}, ShowChord: true})
	for i, pad := range p {
		want := RoleOff
		switch pad.PitchClass {
		case 0:
			want = RoleRoot
		case 4, 7:
			want = RoleChord
		}
		if roles[i] != want {
			t.Errorf("pad %d pc %d: %v, want %v", i, pad.PitchClass, roles[i], want)
		}
	}
}
