package session

import (
	"context"
	"sync"

	"tableflip.dev/reel/pkg/events"
	"tableflip.dev/reel/pkg/film"
	"tableflip.dev/reel/pkg/paging"
)

// monthLabelFormat renders the month title published on the label channel.
const monthLabelFormat = "January 2006"

// CalendarController drives the month pager. It owns the current page
// position, publishes the label/day-state/day-list triple on page changes,
// and fronts the collaborator calls (loads, preferences, sync, auth) so
// their failures never escape raw onto a channel.
type CalendarController struct {
	id      events.ComponentID
	session *Session
	collab  Collaborators

	mu         sync.Mutex
	position   int
	cancelLoad context.CancelFunc
}

// NewCalendarController creates the controller positioned on the anchor
// month. Nothing is published until Start or OnPageChanged runs.
func NewCalendarController(id events.ComponentID, s *Session, collab Collaborators) *CalendarController {
	if id == "" {
		id = events.ComponentID("calendar")
	}
	return &CalendarController{
		id:       id,
		session:  s,
		collab:   collab,
		position: paging.StartPosition,
	}
}

// Start publishes the initial speed preference and network state, then
// navigates to the anchor page.
func (c *CalendarController) Start(ctx context.Context) error {
	c.LoadSpeed(ctx)
	c.RefreshNetwork()
	return c.OnPageChanged(ctx, c.Position())
}

// Position returns the currently visible page.
func (c *CalendarController) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// OnPageChanged resolves the new page to a month and publishes, in order,
// the month label, the day-state classification, and (asynchronously, once
// loaded) the month's day list. A still-pending load for a previous page is
// cancelled, and its result would be discarded anyway because publication
// re-checks the originating position.
func (c *CalendarController) OnPageChanged(ctx context.Context, position int) error {
	month, err := c.session.Pager.Month(position)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.position = position
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	c.mu.Unlock()

	label := month.Format(monthLabelFormat)
	c.session.Bus.MonthLabel.Publish(label)
	c.session.Bus.Events.Emit(events.MonthChangedMsg{Component: c.id, Label: label})
	c.session.Bus.DayState.Publish(film.Classify(c.session.Anchor, month))

	go c.loadMonth(loadCtx, position, month)
	return nil
}

// loadMonth fetches the day list for the page that was visible when the
// load started. The position is re-checked under the lock right before
// publishing, so a slow load for a page the user already left can never
// overwrite the newer page's list (and the publish itself happens inside
// the same critical section as the check).
func (c *CalendarController) loadMonth(ctx context.Context, position int, month film.Day) {
	if c.collab.Loader == nil {
		return
	}
	days, err := c.collab.Loader.LoadMonth(ctx, month.Time)
	if err != nil || ctx.Err() != nil {
		// Transient load failure: leave the prior list published; the next
		// visit to this page retries.
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.position != position {
		return
	}
	c.session.Bus.Days.Publish(days)
}

// OnDaySelected records the tapped day in the shared selection state.
func (c *CalendarController) OnDaySelected(index int, entry *film.Entry) {
	c.session.Select(index, entry)
}

// OnUploadPanelToggle flips the upload panel and emits the matching
// one-shot event. Closing also clears the selection (via the session).
func (c *CalendarController) OnUploadPanelToggle() {
	if c.session.TogglePanel() {
		c.session.Bus.Events.Emit(events.UploadPanelOpenedMsg{Component: c.id})
	} else {
		c.session.Bus.Events.Emit(events.UploadPanelClosedMsg{Component: c.id})
	}
}

// GalleryClicked requests gallery navigation for the selected day.
func (c *CalendarController) GalleryClicked() {
	c.session.Bus.Events.Emit(events.NavigateToGalleryMsg{Component: c.id, Entry: c.session.Selection().Entry})
}

// CameraClicked requests camera navigation for the selected day.
func (c *CalendarController) CameraClicked() {
	c.session.Bus.Events.Emit(events.NavigateToCameraMsg{Component: c.id, Entry: c.session.Selection().Entry})
}

// UploadFinished announces a stored clip and closes the upload panel.
func (c *CalendarController) UploadFinished(entry film.Entry) {
	c.session.Bus.Events.Emit(events.UploadSuccessMsg{Component: c.id, Entry: entry})
	if c.session.Selection().PanelOpen {
		c.OnUploadPanelToggle()
	}
}

// SyncYear refreshes one calendar year at most once per session. A failed
// refresh emits a non-blocking notice and leaves the year unmarked so a
// later visit retries.
func (c *CalendarController) SyncYear(ctx context.Context, year int) error {
	if c.collab.Sync == nil || !c.session.Synced.ShouldSync(year) {
		return nil
	}
	if err := c.collab.Sync.SyncYear(ctx, year); err != nil {
		c.session.Bus.Events.Emit(events.SyncNoticeMsg{Component: c.id, Year: year, Err: err})
		return err
	}
	c.session.Synced.MarkSynced(year)
	return nil
}

// LoadSpeed reads the persisted speed ordinal and publishes the decoded
// preference. Missing or unreadable preferences decode to Normal.
func (c *CalendarController) LoadSpeed(ctx context.Context) {
	speed := film.Normal
	if c.collab.Prefs != nil {
		if index, ok, err := c.collab.Prefs.ReadSpeedIndex(ctx); err == nil && ok {
			speed = film.SpeedForIndex(index)
		}
	}
	c.session.Bus.Speed.Publish(speed)
}

// SetSpeed persists and publishes a new speed preference. The publish
// happens regardless of persistence failure so the running session honors
// the user's choice.
func (c *CalendarController) SetSpeed(ctx context.Context, speed film.Speed) error {
	var err error
	if c.collab.Prefs != nil {
		err = c.collab.Prefs.WriteSpeedIndex(ctx, speed.Index())
	}
	c.session.Bus.Speed.Publish(speed)
	return err
}

// RefreshNetwork probes the monitor and publishes the result.
func (c *CalendarController) RefreshNetwork() {
	if c.collab.Network == nil {
		return
	}
	c.session.Bus.Network.Publish(c.collab.Network.Reachable())
}

// SetNetworkState publishes a pushed reachability change.
func (c *CalendarController) SetNetworkState(reachable bool) {
	c.session.Bus.Network.Publish(reachable)
}

// OnLogout signs the user out. Failure surfaces as a one-shot AuthFailedMsg
// and no logout event fires.
func (c *CalendarController) OnLogout(ctx context.Context) {
	if c.collab.Auth == nil {
		return
	}
	if err := c.collab.Auth.SignOut(ctx); err != nil {
		c.session.Bus.Events.Emit(events.AuthFailedMsg{Component: c.id, Op: "logout", Err: err})
		return
	}
	c.session.Bus.Events.Emit(events.LoggedOutMsg{Component: c.id})
}

// OnDeleteAccount deletes the account and purges local data. The deleted
// event fires only when both steps complete; any failure surfaces as a
// one-shot AuthFailedMsg with no partial cleanup events.
func (c *CalendarController) OnDeleteAccount(ctx context.Context) {
	if c.collab.Auth == nil {
		return
	}
	if err := c.collab.Auth.DeleteAccount(ctx); err != nil {
		c.session.Bus.Events.Emit(events.AuthFailedMsg{Component: c.id, Op: "delete-account", Err: err})
		return
	}
	if err := c.collab.Auth.PurgeUserData(ctx); err != nil {
		c.session.Bus.Events.Emit(events.AuthFailedMsg{Component: c.id, Op: "purge-user-data", Err: err})
		return
	}
	c.session.Bus.Events.Emit(events.AccountDeletedMsg{Component: c.id})
}

// Close cancels any outstanding month load.
func (c *CalendarController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
}
