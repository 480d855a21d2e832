package session

import (
	"context"
	"net"
	"time"

	"tableflip.dev/reel/pkg/film"
)

// The interfaces below are the narrow contracts the engine consumes from its
// collaborators. Every failure they return is caught at this boundary and
// converted to either a silent default or a one-shot failure event; no raw
// collaborator error ever reaches a state or event channel.

// DayLoader fetches the ordered day list for a month. A transient failure
// means "no update this page": prior published state stays up and the next
// page revisit retries.
type DayLoader interface {
	LoadMonth(ctx context.Context, month time.Time) ([]film.Entry, error)
}

// PreferenceStore persists the playback speed ordinal. A missing or corrupt
// value decodes to the Normal default and is never surfaced.
type PreferenceStore interface {
	ReadSpeedIndex(ctx context.Context) (index int, ok bool, err error)
	WriteSpeedIndex(ctx context.Context, index int) error
}

// SyncBackend refreshes one calendar year of diary data from the backend.
type SyncBackend interface {
	SyncYear(ctx context.Context, year int) error
}

// AuthBackend covers the account operations the calendar screen can trigger.
type AuthBackend interface {
	CurrentUserID(ctx context.Context) (id string, ok bool)
	SignOut(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	PurgeUserData(ctx context.Context) error
}

// NetworkMonitor answers whether the backend looks reachable right now.
type NetworkMonitor interface {
	Reachable() bool
}

// Collaborators bundles the external dependencies a calendar controller
// needs. Any nil field degrades to an offline no-op for that concern.
type Collaborators struct {
	Loader  DayLoader
	Prefs   PreferenceStore
	Sync    SyncBackend
	Auth    AuthBackend
	Network NetworkMonitor
}

// DialMonitor is a NetworkMonitor that probes a TCP endpoint. The standard
// dialer is all this needs; none of the heavier service stacks apply to a
// single reachability probe.
type DialMonitor struct {
	Addr    string
	Timeout time.Duration
}

// Reachable reports whether the probe endpoint accepted a connection.
func (d DialMonitor) Reachable() bool {
	addr := d.Addr
	if addr == "" {
		addr = "1.1.1.1:53"
	}
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
