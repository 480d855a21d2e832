// Package paging maps the calendar pager's virtually unbounded page index
// onto concrete months. The index space is a fixed symmetric range centered
// on the month the session started in, so the user can page backward and
// forward equally far without the range ever being reallocated.
package paging

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tableflip.dev/reel/pkg/film"
)

const (
	// MaxPosition bounds the page index space: valid positions are
	// [0, MaxPosition).
	MaxPosition = math.MaxInt32

	// StartPosition is the page that shows the anchor month.
	StartPosition = MaxPosition / 2
)

// ErrRange reports a position outside [0, MaxPosition). The pager widget's
// own bounds should make this unreachable; it is checked defensively.
var ErrRange = errors.New("paging: position out of range")

// Index resolves page positions against an anchor captured once at session
// start. Both directions of the mapping are pure: same input, same output,
// no internal state changes.
type Index struct {
	anchor film.Day
}

// New creates an index anchored at the given instant, normalized to its
// diary day.
func New(anchor time.Time) *Index {
	return &Index{anchor: film.DayOf(anchor)}
}

// Anchor returns the normalized anchor day.
func (ix *Index) Anchor() film.Day {
	return ix.anchor
}

// Month resolves a page position to the day representing that month's view.
// The anchor page keeps the anchor's own day-of-month; every other page
// starts at day 1, so month arithmetic can never overflow into a neighboring
// month on short months.
func (ix *Index) Month(position int) (film.Day, error) {
	if position < 0 || position >= MaxPosition {
		return film.Day{}, fmt.Errorf("%w: %d", ErrRange, position)
	}
	offset := position - StartPosition
	if offset == 0 {
		return ix.anchor, nil
	}
	first := time.Date(ix.anchor.Year(), ix.anchor.Month(), 1, 12, 0, 0, 0, ix.anchor.Location())
	return film.DayOf(first.AddDate(0, offset, 0)), nil
}

// Position is the inverse of Month at whole-month granularity: it returns
// the page that shows the month containing day.
func (ix *Index) Position(day time.Time) (int, error) {
	delta := monthsOf(day) - monthsOf(ix.anchor.Time)
	position := StartPosition + delta
	if position < 0 || position >= MaxPosition {
		return 0, fmt.Errorf("%w: month %s", ErrRange, day.Format("2006-01"))
	}
	return position, nil
}

func monthsOf(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
