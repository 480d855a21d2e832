package film

// Speed is the playback speed preference for replaying clips. The ordinal is
// what gets persisted; decoding goes through an explicit lookup table so
// reordering the constants can never reinterpret stored preferences.
type Speed int

const (
	// Slow plays clips at half speed.
	Slow Speed = iota
	// Normal plays clips at recorded speed.
	Normal
	// Fast plays clips at double speed.
	Fast
)

var speedByIndex = map[int]Speed{
	0: Slow,
	1: Normal,
	2: Fast,
}

// SpeedForIndex maps a persisted ordinal back to a Speed. Missing or
// out-of-range ordinals fall back to Normal rather than failing.
func SpeedForIndex(index int) Speed {
	if s, ok := speedByIndex[index]; ok {
		return s
	}
	return Normal
}

// Index returns the ordinal persisted for this speed.
func (s Speed) Index() int {
	for i, v := range speedByIndex {
		if v == s {
			return i
		}
	}
	return 1
}

// Factor returns the playback rate multiplier.
func (s Speed) Factor() float64 {
	switch s {
	case Slow:
		return 0.5
	case Fast:
		return 2.0
	default:
		return 1.0
	}
}

func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Fast:
		return "fast"
	default:
		return "normal"
	}
}
