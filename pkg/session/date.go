package session

import (
	"context"
	"sync"

	"tableflip.dev/reel/pkg/bus"
	"tableflip.dev/reel/pkg/events"
	"tableflip.dev/reel/pkg/film"
)

// DateController backs the day-list view of a single month. It holds the
// month's day entries, republishes them on the shared day-list channel, and
// listens for upload successes so a freshly attached clip shows up without a
// full reload. It never talks to the calendar controller directly; the
// shared channels are the only coupling.
type DateController struct {
	id      events.ComponentID
	session *Session
	loader  DayLoader
	month   film.Day

	mu   sync.Mutex
	days []film.Entry

	cancelEvents func()
}

// NewDateController creates a controller for the month containing month and
// subscribes it to upload events.
func NewDateController(id events.ComponentID, s *Session, loader DayLoader, month film.Day) *DateController {
	if id == "" {
		id = events.ComponentID("date")
	}
	d := &DateController{
		id:      id,
		session: s,
		loader:  loader,
		month:   month,
	}
	d.cancelEvents = s.Bus.Events.Subscribe(func(ev bus.Event) {
		if msg, ok := ev.(events.UploadSuccessMsg); ok {
			d.ApplyUpload(msg.Entry)
		}
	})
	return d
}

// Month returns the month this controller serves.
func (d *DateController) Month() film.Day {
	return d.month
}

// Load fetches the month's day list and publishes it. A load failure leaves
// the previously published list in place.
func (d *DateController) Load(ctx context.Context) error {
	if d.loader == nil {
		return nil
	}
	days, err := d.loader.LoadMonth(ctx, d.month.Time)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	d.mu.Lock()
	d.days = days
	d.mu.Unlock()
	d.session.Bus.Days.Publish(days)
	return nil
}

// Days returns a copy of the current day list.
func (d *DateController) Days() []film.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]film.Entry(nil), d.days...)
}

// ApplyUpload swaps in the uploaded entry's day and republishes, provided
// the upload belongs to this controller's month.
func (d *DateController) ApplyUpload(entry film.Entry) {
	if !d.month.SameMonth(entry.Day.Time) {
		return
	}
	d.mu.Lock()
	updated := false
	for i := range d.days {
		if d.days[i].Day.SameDay(entry.Day.Time) {
			d.days[i] = entry
			updated = true
			break
		}
	}
	days := append([]film.Entry(nil), d.days...)
	d.mu.Unlock()

	if updated {
		d.session.Bus.Days.Publish(days)
	}
}

// OnDaySelected records the tap in the shared selection and reports whether
// the day already has a clip (play) or not (record).
func (d *DateController) OnDaySelected(index int) (film.Entry, bool) {
	d.mu.Lock()
	var entry film.Entry
	if index >= 0 && index < len(d.days) {
		entry = d.days[index]
	} else {
		index = NoSelection
	}
	d.mu.Unlock()

	if index == NoSelection {
		d.session.Select(NoSelection, nil)
		return film.Entry{}, false
	}
	selected := entry
	d.session.Select(index, &selected)
	return entry, entry.HasMedia()
}

// Close detaches the controller from the event stream.
func (d *DateController) Close() {
	if d.cancelEvents != nil {
		d.cancelEvents()
		d.cancelEvents = nil
	}
}
