// Package film holds the core data model for the video diary: one calendar
// day, its optional attached clip, and the derived day classifications.
package film

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the canonical storage key layout for a diary day.
const DayFormat = "2006-01-02"

// labelFormat is the display label a day is searched and listed by.
const labelFormat = "January 2, 2006"

// Day is a date-only value pinned to noon local time. Normalizing every day
// to the same wall-clock instant keeps equality and ordering stable across
// daylight-saving boundaries, so comparisons reduce to date-part comparison.
type Day struct {
	time.Time
}

// DayOf normalizes an arbitrary instant to its diary day.
func DayOf(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())}
}

// ParseDay parses the canonical yyyy-mm-dd form.
func ParseDay(v string) (Day, error) {
	t, err := time.ParseInLocation(DayFormat, v, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("film: parse day %q: %w", v, err)
	}
	return DayOf(t), nil
}

// Key renders the canonical storage key for the day.
func (d Day) Key() string {
	return d.Format(DayFormat)
}

// Label renders the human-facing label for the day.
func (d Day) Label() string {
	return d.Format(labelFormat)
}

func (d Day) String() string {
	return d.Key()
}

// SameDay reports whether then falls on the same calendar date.
func (d Day) SameDay(then time.Time) bool {
	return d.Year() == then.Year() && d.Month() == then.Month() && d.Day() == then.Day()
}

// SameMonth reports whether then falls in the same calendar month.
func (d Day) SameMonth(then time.Time) bool {
	return d.Year() == then.Year() && d.Month() == then.Month()
}

// MarshalJSON encodes the day in its canonical form.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", d.Key())), nil
}

// UnmarshalJSON decodes and re-normalizes the day.
func (d *Day) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == "" {
		*d = Day{}
		return nil
	}
	day, err := ParseDay(v)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// Entry is one diary day together with an optional reference to the clip
// recorded on it. The media ref is opaque to the core; it is minted by the
// store and only ever round-tripped.
type Entry struct {
	Day   Day    `json:"day"`
	Media string `json:"media,omitempty"`
}

// New creates an entry for the given day with no attached clip.
func New(day Day) Entry {
	return Entry{Day: day}
}

// HasMedia reports whether a clip is attached to this day.
func (e Entry) HasMedia() bool {
	return e.Media != ""
}

// Label returns the display label the entry is listed and searched by.
func (e Entry) Label() string {
	return e.Day.Label()
}

func (e Entry) String() string {
	if e.HasMedia() {
		return fmt.Sprintf("%s [%s]", e.Day.Key(), e.Media)
	}
	return e.Day.Key()
}
