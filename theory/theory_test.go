package theory

import (
	"errors"
	"math"
	"testing"
)

func TestPC(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, {11, 11}, {12, 0}, {-1, 11}, {-13, 11}, {127, 7},
	}
	for _, tt := range tests {
		if got := PC(tt.in); got != tt.want {
			t.Errorf("PC(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChordTableShape(t *testing.T) {
	if n := len(ChordTypes()); n != 18 {
		t.Fatalf("chord table has %d entries, want 18", n)
	}
	for _, ct := range ChordTypes() {
		if len(ct.Intervals) == 0 || ct.Intervals[0] != 0 {
			t.Errorf("%s: first interval must be 0, got %v", ct.Key, ct.Intervals)
		}
		if _, ok := Chord(ct.Key); !ok {
			t.Errorf("%s: lookup failed", ct.Key)
		}
	}
	if n := len(Scales()); n != 7 {
		t.Fatalf("scale table has %d entries, want 7", n)
	}
}

func TestChordRootFirst(t *testing.T) {
	for _, ct := range ChordTypes() {
		for root := 0; root < 12; root++ {
			pcs, err := ChordPitchClasses(root, ct.Key, 0, true)
			if err != nil {
				t.Fatal(err)
			}
			if pcs.All[0] != root {
				t.Errorf("%s root %d: All[0] = %d", ct.Key, root, pcs.All[0])
			}
			if pcs.HasBass {
				t.Errorf("%s root %d: root position must not have a bass", ct.Key, root)
			}
		}
	}
}

func TestInversionRoundTrip(t *testing.T) {
	for _, ct := range ChordTypes() {
		n := len(ct.Intervals)
		for inv := 0; inv < n; inv++ {
			pcs, err := ChordPitchClasses(4, ct.Key, inv, true)
			if err != nil {
				t.Fatal(err)
			}
			k := (n - inv) % n
			back := append(append([]int{}, pcs.Inverted[k:]...), pcs.Inverted[:k]...)
			for i := range back {
				if back[i] != pcs.All[i] {
					t.Fatalf("%s inv %d: rotated back %v, want %v", ct.Key, inv, back, pcs.All)
				}
			}
			if pcs.HasBass != (inv > 0) {
				t.Errorf("%s inv %d: HasBass = %v", ct.Key, inv, pcs.HasBass)
			}
			if pcs.HasBass && pcs.Bass != pcs.Inverted[0] {
				t.Errorf("%s inv %d: bass %d, want %d", ct.Key, inv, pcs.Bass, pcs.Inverted[0])
			}
		}
	}
}

func TestInversionIgnoredWhenNotApplied(t *testing.T) {
	pcs, err := ChordPitchClasses(0, "maj7", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if pcs.HasBass {
		t.Error("bass set although inversion not applied")
	}
	if pcs.Inverted[0] != 0 {
		t.Errorf("Inverted[0] = %d, want 0", pcs.Inverted[0])
	}
}

func TestChordKeepsDuplicates(t *testing.T) {
	// C add9 -> C E G D; 9 reduces to 2
	pcs, err := ChordPitchClasses(0, "add9", 0, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 4, 7, 2}
	for i, pc := range want {
		if pcs.All[i] != pc {
			t.Fatalf("All = %v, want %v", pcs.All, want)
		}
	}

	ct, _ := Chord("9")
	if got := len(ct.PitchClassSet(0)); got != 5 {
		t.Errorf("C9 distinct pitch classes = %d, want 5", got)
	}
}

func TestUnknownKeys(t *testing.T) {
	if _, err := ChordPitchClasses(0, "maj13", 0, true); !errors.Is(err, ErrUnknownChord) {
		t.Errorf("got %v, want ErrUnknownChord", err)
	}
	if _, err := ScalePitchClasses(0, "lydian"); !errors.Is(err, ErrUnknownScale) {
		t.Errorf("got %v, want ErrUnknownScale", err)
	}
}

func TestScalePitchClasses(t *testing.T) {
	got, err := ScalePitchClasses(9, "penta_min") // A minor pentatonic
	if err != nil {
		t.Fatal(err)
	}
	want := []int{9, 0, 2, 4, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIntervalName(t *testing.T) {
	tests := map[int]string{0: "R", 3: "b3", 7: "5", 12: "(8)", 14: "9", 15: "+15", 21: "+21"}
	for in, want := range tests {
		if got := IntervalName(in); got != want {
			t.Errorf("IntervalName(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestNotes(t *testing.T) {
	if got := NoteWithOctave(36); got != "C2" {
		t.Errorf("NoteWithOctave(36) = %q", got)
	}
	if got := NoteWithOctave(61); got != "C#4" {
		t.Errorf("NoteWithOctave(61) = %q", got)
	}
	if f := MIDIToFreq(69); f != 440 {
		t.Errorf("A4 = %v", f)
	}
	if f := MIDIToFreq(81); math.Abs(f-880) > 1e-9 {
		t.Errorf("A5 = %v", f)
	}
}
