package film

// DayState classifies a day or month relative to the session anchor. It is
// derived state, recomputed on every page change, and never persisted.
type DayState int

const (
	// Before marks days earlier than the anchor.
	Before DayState = iota - 1
	// Today marks the anchor day itself.
	Today
	// After marks days later than the anchor.
	After
)

func (s DayState) String() string {
	switch s {
	case Before:
		return "before"
	case Today:
		return "today"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// Classify compares a candidate day against the anchor. Both sides carry the
// same noon normalization, so the signed difference of their instants is a
// pure date comparison and time-of-day can never tip the result.
func Classify(anchor, candidate Day) DayState {
	diff := candidate.UnixMilli() - anchor.UnixMilli()
	switch {
	case diff < 0:
		return Before
	case diff == 0:
		return Today
	default:
		return After
	}
}
