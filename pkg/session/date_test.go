package session

import (
	"context"
	"testing"

	"tableflip.dev/reel/pkg/events"
	"tableflip.dev/reel/pkg/film"
)

func juneController(t *testing.T) (*DateController, *Session, *fakeLoader) {
	t.Helper()
	s := New(anchorTime())
	t.Cleanup(s.Close)
	loader := newFakeLoader()
	loader.serve("2024-06",
		testEntry(t, "2024-06-01", "a"),
		testEntry(t, "2024-06-02", ""),
		testEntry(t, "2024-06-03", "c"),
	)
	month, err := film.ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	d := NewDateController("test", s, loader, month)
	t.Cleanup(d.Close)
	return d, s, loader
}

func TestLoadPublishesMonthDays(t *testing.T) {
	d, s, _ := juneController(t)

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	days, ok := s.Bus.Days.Latest()
	if !ok || len(days) != 3 {
		t.Fatalf("published days = %v, want the served three", days)
	}
	if got := d.Days(); len(got) != 3 {
		t.Errorf("Days() = %v, want the served three", got)
	}
}

func TestLoadFailurePublishesNothing(t *testing.T) {
	d, s, loader := juneController(t)
	loader.err = errBoom

	if err := d.Load(context.Background()); err == nil {
		t.Fatal("expected the load failure to surface")
	}
	if _, ok := s.Bus.Days.Latest(); ok {
		t.Error("failed load published a day list")
	}
}

func TestApplyUploadSwapsDayAndRepublishes(t *testing.T) {
	d, s, _ := juneController(t)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	d.ApplyUpload(testEntry(t, "2024-06-02", "fresh"))

	days, _ := s.Bus.Days.Latest()
	if len(days) != 3 || days[1].Media != "fresh" {
		t.Errorf("published days = %v, want the middle day swapped", days)
	}
	if days[0].Media != "a" || days[2].Media != "c" {
		t.Errorf("neighboring days disturbed: %v", days)
	}
}

func TestApplyUploadIgnoresOtherMonths(t *testing.T) {
	d, s, _ := juneController(t)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	before, _ := s.Bus.Days.Latest()

	d.ApplyUpload(testEntry(t, "2024-07-02", "elsewhere"))

	after, _ := s.Bus.Days.Latest()
	if len(after) != len(before) {
		t.Fatalf("day list length changed: %v", after)
	}
	for i := range after {
		if after[i].Media != before[i].Media {
			t.Errorf("day %d changed on an out-of-month upload: %v", i, after[i])
		}
	}
}

func TestUploadEventsReachTheController(t *testing.T) {
	d, s, _ := juneController(t)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	s.Bus.Events.Emit(events.UploadSuccessMsg{Component: "calendar", Entry: testEntry(t, "2024-06-02", "fresh")})

	if got := d.Days(); got[1].Media != "fresh" {
		t.Errorf("upload event not applied: %v", got)
	}
}

func TestOnDaySelectedReportsPlayability(t *testing.T) {
	d, s, _ := juneController(t)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	entry, playable := d.OnDaySelected(0)
	if !playable || entry.Media != "a" {
		t.Errorf("OnDaySelected(0) = %v, %v; want playable day a", entry, playable)
	}
	if sel := s.Selection(); sel.Index != 0 || sel.Entry == nil {
		t.Errorf("selection = %+v, want index 0 recorded", sel)
	}

	entry, playable = d.OnDaySelected(1)
	if playable {
		t.Errorf("OnDaySelected(1) = %v, playable; want a record prompt", entry)
	}

	if _, playable := d.OnDaySelected(99); playable {
		t.Error("out-of-range selection reported playable")
	}
	if sel := s.Selection(); sel.Index != NoSelection || sel.Entry != nil {
		t.Errorf("selection after out-of-range tap = %+v, want cleared", sel)
	}
}
