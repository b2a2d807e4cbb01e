// Package detect names the chord formed by a set of sounding notes.
package detect

import (
	"sort"

	"go-chordpad/theory"
)

// MaxResults is how many ranked matches Detect reports
const MaxResults = 3

// Match is one chord reading of the sounding notes
type Match struct {
	Root      int
	Type      theory.ChordType
	Exact     bool // sounding set equals the chord; otherwise extra notes are held
	Bass      int  // lowest sounding pitch class, valid when HasBass
	HasBass   bool // lowest note is not the chord root
	NoteCount int  // distinct pitch classes in the chord
}

// Name renders the match as "C", "CM7", "Cm7/D#"...
func (m Match) Name() string {
	name := theory.NoteName(m.Root) + m.Type.Symbol
	if m.HasBass {
		name += "/" + theory.NoteName(m.Bass)
	}
	return name
}

// Detect tries every chord type on every root against the sounding notes and
// returns the best readings, best first. Fewer than two distinct notes give
// no result.
//
// A chord matches exactly when its pitch-class set equals the sounding set,
// and as a subset when it has at least three members, all sounding, with
// more sounding classes left over. Ranking: exact before subset, then fewer
// chord notes, then root in the bass.
func Detect(notes []int) []Match {
	distinct := make(map[int]bool, len(notes))
	for _, n := range notes {
		distinct[n] = true
	}
	if len(distinct) < 2 {
		return nil
	}

	held := make(map[int]bool, 12)
	lowest := notes[0]
	for _, n := range notes {
		held[theory.PC(n)] = true
		if n < lowest {
			lowest = n
		}
	}
	bass := theory.PC(lowest)

	type ranked struct {
		Match
		isRoot bool
	}
	var found []ranked

	for _, ct := range theory.ChordTypes() {
		for root := 0; root < 12; root++ {
			chord := ct.PitchClassSet(root)

			all := true
			for _, pc := range chord {
				if !held[pc] {
					all = false
					break
				}
			}
			if !all {
				continue
			}

			exact := len(chord) == len(held)
			subset := !exact && len(chord) >= 3 && len(held) > len(chord)
			if !exact && !subset {
				continue
			}

			m := Match{Root: root, Type: ct, Exact: exact, NoteCount: len(chord)}
			if bass != root {
				m.Bass = bass
				m.HasBass = true
			}
			found = append(found, ranked{Match: m, isRoot: bass == root})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.Exact != b.Exact {
			return a.Exact
		}
		if a.NoteCount != b.NoteCount {
			return a.NoteCount < b.NoteCount
		}
		return a.isRoot && !b.isRoot
	})

	if len(found) > MaxResults {
		found = found[:MaxResults]
	}
	out := make([]Match, len(found))
	for i, r := range found {
		out[i] = r.Match
	}
	return out
}

// Names returns the display names of the matches
func Names(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name()
	}
	return out
}
