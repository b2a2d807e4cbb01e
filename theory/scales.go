package theory

import "fmt"

// Scale is a set of offsets (0-11, ascending, starting at 0) from a root
type Scale struct {
	Key       string
	Intervals []int
	Label     string
}

var scales = []Scale{
	{Key: "major", Intervals: []int{0, 2, 4, 5, 7, 9, 11}, Label: "Major"},
	{Key: "minor", Intervals: []int{0, 2, 3, 5, 7, 8, 10}, Label: "Nat Minor"},
	{Key: "dorian", Intervals: []int{0, 2, 3, 5, 7, 9, 10}, Label: "Dorian"},
	{Key: "mixolydian", Intervals: []int{0, 2, 4, 5, 7, 9, 10}, Label: "Mixolydian"},
	{Key: "penta_maj", Intervals: []int{0, 2, 4, 7, 9}, Label: "Penta Maj"},
	{Key: "penta_min", Intervals: []int{0, 3, 5, 7, 10}, Label: "Penta Min"},
	{Key: "blues", Intervals: []int{0, 3, 5, 6, 7, 10}, Label: "Blues"},
}

// Scales returns the built-in scales in display order (shared slice)
func Scales() []Scale {
	return scales
}

// ScaleByKey looks up a scale
func ScaleByKey(key string) (Scale, bool) {
	for _, s := range scales {
		if s.Key == key {
			return s, true
		}
	}
	return Scale{}, false
}

// ScalePitchClasses returns the scale's pitch classes from root, keeping the
// scale's interval order.
func ScalePitchClasses(root int, scaleKey string) ([]int, error) {
	s, ok := ScaleByKey(scaleKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, scaleKey)
	}
	out := make([]int, len(s.Intervals))
	for i, iv := range s.Intervals {
		out[i] = PC(root + iv)
	}
	return out, nil
}
