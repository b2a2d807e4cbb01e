package grid

// Role is the visual/LED role of a pad
type Role int

const (
	RoleOff Role = iota
	RoleScale
	RoleChord
	RoleBass
	RoleRoot
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleBass:
		return "bass"
	case RoleChord:
		return "chord"
	case RoleScale:
		return "scale"
	}
	return "off"
}

// View is the theory state a classification runs against
type View struct {
	Root      int
	Chord     []int // chord pitch classes
	Scale     []int // scale pitch classes
	Bass      int
	HasBass   bool
	ShowChord bool
	ShowScale bool
}

// Classify assigns a role to one pitch class. First match wins:
// root, bass, chord, scale, off. The root is lit regardless of toggles.
// Screen and LEDs both go through here so they cannot disagree.
func Classify(pc int, v View) Role {
	switch {
	case pc == v.Root:
		return RoleRoot
	case v.ShowChord && v.HasBass && pc == v.Bass:
		return RoleBass
	case v.ShowChord && contains(v.Chord, pc):
		return RoleChord
	case v.ShowScale && contains(v.Scale, pc):
		return RoleScale
	}
	return RoleOff
}

// Roles classifies every pad of the grid
func Roles(p *Pads, v View) [Rows * Cols]Role {
	var out [Rows * Cols]Role
	for i, pad := range p {
		out[i] = Classify(pad.PitchClass, v)
	}
	return out
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
