// Package events defines the typed one-shot messages exchanged between the
// calendar, day-list, and search controllers over the session event stream.
// These are notifications, not state: they reach only the subscribers that
// are live when they fire and are never replayed.
package events

import (
	"fmt"

	"tableflip.dev/reel/pkg/film"
)

// ComponentID identifies the controller instance emitting an event.
type ComponentID string

// entryLabel renders an optional entry for logs.
func entryLabel(e *film.Entry) string {
	if e == nil {
		return ""
	}
	return e.Day.Key()
}

// NavigateToGalleryMsg asks the host to open the gallery picker for the
// selected day (nil when no day is selected).
type NavigateToGalleryMsg struct {
	Component ComponentID
	Entry     *film.Entry
}

// Describe renders the navigation request for logs.
func (m NavigateToGalleryMsg) Describe() string {
	return fmt.Sprintf(`target:"gallery" day:%q`, entryLabel(m.Entry))
}

// NavigateToCameraMsg asks the host to open the camera for the selected day.
type NavigateToCameraMsg struct {
	Component ComponentID
	Entry     *film.Entry
}

// Describe renders the navigation request for logs.
func (m NavigateToCameraMsg) Describe() string {
	return fmt.Sprintf(`target:"camera" day:%q`, entryLabel(m.Entry))
}

// UploadPanelOpenedMsg fires when the upload panel toggles open.
type UploadPanelOpenedMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m UploadPanelOpenedMsg) Describe() string {
	return fmt.Sprintf(`component:%q panel:"open"`, m.Component)
}

// UploadPanelClosedMsg fires when the upload panel toggles closed. Closing
// the panel implicitly resets the day selection.
type UploadPanelClosedMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m UploadPanelClosedMsg) Describe() string {
	return fmt.Sprintf(`component:%q panel:"closed"`, m.Component)
}

// UploadSuccessMsg announces that a clip was attached to a day, so the
// owning day list can reload that single day.
type UploadSuccessMsg struct {
	Component ComponentID
	Entry     film.Entry
}

// Describe renders the upload result for logs.
func (m UploadSuccessMsg) Describe() string {
	return fmt.Sprintf(`day:%q media:%q`, m.Entry.Day.Key(), m.Entry.Media)
}

// MonthChangedMsg mirrors the month label update as a one-shot notice for
// hosts that only care about transitions, not the current value.
type MonthChangedMsg struct {
	Component ComponentID
	Label     string
}

// Describe implements the logging helper.
func (m MonthChangedMsg) Describe() string {
	return fmt.Sprintf(`month:%q`, m.Label)
}

// SyncNoticeMsg surfaces a failed year sync as a non-blocking notice. The
// year stays unmarked so a later visit retries.
type SyncNoticeMsg struct {
	Component ComponentID
	Year      int
	Err       error
}

// Describe renders the sync notice for logs.
func (m SyncNoticeMsg) Describe() string {
	return fmt.Sprintf(`year:%d err:%q`, m.Year, m.Err)
}

// LoggedOutMsg announces that the session user signed out.
type LoggedOutMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m LoggedOutMsg) Describe() string {
	return fmt.Sprintf(`component:%q auth:"logged-out"`, m.Component)
}

// AccountDeletedMsg announces that account deletion and local purge both
// completed. It never fires on partial failure.
type AccountDeletedMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m AccountDeletedMsg) Describe() string {
	return fmt.Sprintf(`component:%q auth:"deleted"`, m.Component)
}

// AuthFailedMsg surfaces a failed logout or account deletion. No local
// cleanup events fire alongside it.
type AuthFailedMsg struct {
	Component ComponentID
	Op        string
	Err       error
}

// Describe renders the auth failure for logs.
func (m AuthFailedMsg) Describe() string {
	return fmt.Sprintf(`op:%q err:%q`, m.Op, m.Err)
}

// FilmChosenMsg fires when a film is chosen from the search results. It
// carries the index within the filtered sequence as displayed, plus a
// snapshot of that sequence, so a downstream player can resolve
// next/previous even if the live list changes afterwards.
type FilmChosenMsg struct {
	Component ComponentID
	Index     int
	Films     []film.Entry
}

// Describe renders the selection for logs.
func (m FilmChosenMsg) Describe() string {
	return fmt.Sprintf(`index:%d of:%d`, m.Index, len(m.Films))
}
