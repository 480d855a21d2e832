package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/reel/pkg/bus"
	"tableflip.dev/reel/pkg/film"
)

func anchorTime() time.Time {
	return time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)
}

func testEntry(t *testing.T, day, media string) film.Entry {
	t.Helper()
	d, err := film.ParseDay(day)
	if err != nil {
		t.Fatalf("parse day %q: %v", day, err)
	}
	return film.Entry{Day: d, Media: media}
}

// fakeLoader serves canned month lists keyed by yyyy-mm. When gated, a load
// blocks until the gate closes or the context is cancelled.
type fakeLoader struct {
	mu     sync.Mutex
	months map[string][]film.Entry
	err    error
	gate   chan struct{}
	calls  []string
	ctxErr error
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{months: map[string][]film.Entry{}}
}

func (f *fakeLoader) serve(month string, days ...film.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.months[month] = days
}

func (f *fakeLoader) LoadMonth(ctx context.Context, month time.Time) ([]film.Entry, error) {
	key := month.Format("2006-01")

	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gate
	err := f.err
	days := f.months[key]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			f.mu.Lock()
			f.ctxErr = ctx.Err()
			f.mu.Unlock()
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return days, nil
}

// recorded collects every event emitted on a stream for later assertions.
type recorded struct {
	mu     sync.Mutex
	events []bus.Event
}

func record(t *testing.T, stream *bus.Stream) *recorded {
	t.Helper()
	r := &recorded{}
	cancel := stream.Subscribe(func(ev bus.Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	})
	t.Cleanup(cancel)
	return r
}

func (r *recorded) all() []bus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bus.Event(nil), r.events...)
}

// awaitDays funnels day-list publishes into a channel so tests can wait on
// the asynchronous month load without polling.
func awaitDays(t *testing.T, s *Session) <-chan []film.Entry {
	t.Helper()
	ch := make(chan []film.Entry, 8)
	cancel := s.Bus.Days.Subscribe(func(days []film.Entry) {
		ch <- days
	})
	t.Cleanup(cancel)
	return ch
}

func receiveDays(t *testing.T, ch <-chan []film.Entry) []film.Entry {
	t.Helper()
	select {
	case days := <-ch:
		return days
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a day-list publish")
		return nil
	}
}

func TestSelectionStartsEmpty(t *testing.T) {
	s := New(anchorTime())
	defer s.Close()

	sel := s.Selection()
	if sel.Index != NoSelection || sel.Entry != nil || sel.PanelOpen {
		t.Errorf("fresh selection = %+v, want empty", sel)
	}
}

func TestTogglePanelClearingSelection(t *testing.T) {
	s := New(anchorTime())
	defer s.Close()

	e := testEntry(t, "2024-06-10", "clip")
	s.Select(9, &e)

	if !s.TogglePanel() {
		t.Fatal("first toggle should open the panel")
	}
	if sel := s.Selection(); sel.Index != 9 || sel.Entry == nil {
		t.Errorf("opening the panel disturbed the selection: %+v", sel)
	}

	if s.TogglePanel() {
		t.Fatal("second toggle should close the panel")
	}
	if sel := s.Selection(); sel.Index != NoSelection || sel.Entry != nil {
		t.Errorf("closing the panel should clear the selection, got %+v", sel)
	}
}

func TestSessionChannelDefaults(t *testing.T) {
	s := New(anchorTime())
	defer s.Close()

	if state, ok := s.Bus.DayState.Latest(); !ok || state != film.Today {
		t.Errorf("DayState default = %v, %v; want Today", state, ok)
	}
	if speed, ok := s.Bus.Speed.Latest(); !ok || speed != film.Normal {
		t.Errorf("Speed default = %v, %v; want Normal", speed, ok)
	}
	if _, ok := s.Bus.MonthLabel.Latest(); ok {
		t.Error("MonthLabel should start empty")
	}
}

func TestSessionFilmsFollowDayPublishes(t *testing.T) {
	s := New(anchorTime())
	defer s.Close()

	s.Bus.Days.Publish([]film.Entry{
		testEntry(t, "2024-06-01", "a"),
		testEntry(t, "2024-06-02", ""),
	})

	films, ok := s.Films().Latest()
	if !ok {
		t.Fatal("aggregated films not published")
	}
	if len(films) != 1 || films[0].Media != "a" {
		t.Errorf("aggregated films = %v, want [a]", films)
	}
}

func TestDialMonitorUnreachableEndpoint(t *testing.T) {
	m := DialMonitor{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}
	if m.Reachable() {
		t.Error("closed local port reported reachable")
	}
}

var errBoom = errors.New("boom")
