// Package session wires the calendar engine together: one per-user-session
// container holding the anchor day, the shared state/event channels, the
// synced-year set, and the current day selection. Controllers receive the
// container by injection instead of reaching for globals, so lifetime and
// test isolation stay explicit.
package session

import (
	"sync"
	"time"

	"tableflip.dev/reel/pkg/bus"
	"tableflip.dev/reel/pkg/film"
	"tableflip.dev/reel/pkg/paging"
)

// Channels groups the persistent state channels and the one-shot event
// stream every controller shares. A page change publishes, in order: month
// label, day state, then the day list; consumers may rely on that ordering
// within a single page change.
type Channels struct {
	MonthLabel *bus.State[string]
	DayState   *bus.State[film.DayState]
	Days       *bus.State[[]film.Entry]
	Network    *bus.State[bool]
	Speed      *bus.State[film.Speed]
	Events     *bus.Stream
}

// NewChannels creates the shared channel set. DayState and Speed start with
// their session defaults; the rest stay empty until first publish.
func NewChannels() *Channels {
	return &Channels{
		MonthLabel: bus.NewState[string](),
		DayState:   bus.NewStateOf(film.Today),
		Days:       bus.NewState[[]film.Entry](),
		Network:    bus.NewState[bool](),
		Speed:      bus.NewStateOf(film.Normal),
		Events:     bus.NewStream(),
	}
}

// NoSelection is the Selection.Index value when no day is selected.
const NoSelection = -1

// Selection is the day-selection and upload-panel toggle state. It is
// mutated only through explicit user actions and reset implicitly when the
// panel closes.
type Selection struct {
	Index     int
	Entry     *film.Entry
	PanelOpen bool
}

// Session is the process-scoped state container for one signed-in user
// session. The anchor is captured once at construction and never moves;
// every relative classification and page mapping derives from it.
type Session struct {
	Anchor     film.Day
	Pager      *paging.Index
	Bus        *Channels
	Aggregated *film.Aggregator
	Synced     *SyncedYears

	mu        sync.Mutex
	selection Selection
}

// New captures the anchor from now and assembles the shared channel set,
// pager, aggregator, and synced-year tracker.
func New(now time.Time) *Session {
	channels := NewChannels()
	return &Session{
		Anchor:     film.DayOf(now),
		Pager:      paging.New(now),
		Bus:        channels,
		Aggregated: film.NewAggregator(channels.Days),
		Synced:     NewSyncedYears(),
		selection:  Selection{Index: NoSelection},
	}
}

// Films exposes the aggregated media-bearing film list channel.
func (s *Session) Films() *bus.State[[]film.Entry] {
	return s.Aggregated.Films()
}

// Selection returns a copy of the current selection state.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Select records the selected day. Passing NoSelection and a nil entry
// clears it.
func (s *Session) Select(index int, entry *film.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Index = index
	s.selection.Entry = entry
}

// TogglePanel flips the upload panel state and reports the new state.
// Closing the panel clears the selection.
func (s *Session) TogglePanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.PanelOpen = !s.selection.PanelOpen
	if !s.selection.PanelOpen {
		s.selection.Index = NoSelection
		s.selection.Entry = nil
	}
	return s.selection.PanelOpen
}

// Close releases the session's subscriptions.
func (s *Session) Close() {
	s.Aggregated.Close()
}
