package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNoUser reports an account operation with nobody signed in.
var ErrNoUser = errors.New("store: no user signed in")

// Auth is the local account backend: the user identity comes from config,
// sign-out is session-local, and account deletion purges the on-disk diary.
type Auth struct {
	cfg Config
	p   Persistence

	mu        sync.Mutex
	signedOut bool
}

// NewAuth creates the local auth backend over the given config and store.
func NewAuth(cfg Config, p Persistence) *Auth {
	return &Auth{cfg: cfg, p: p}
}

// CurrentUserID returns the configured user, if any and still signed in.
func (a *Auth) CurrentUserID(ctx context.Context) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signedOut || a.cfg == nil {
		return "", false
	}
	id := a.cfg.UserID()
	return id, id != ""
}

// SignOut ends the local session.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedOut = true
	return nil
}

// DeleteAccount removes the account. Locally there is nothing beyond the
// sign-in state; data removal happens in PurgeUserData so the caller
// controls the all-or-nothing ordering.
func (a *Auth) DeleteAccount(ctx context.Context) error {
	if _, ok := a.CurrentUserID(ctx); !ok {
		return ErrNoUser
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedOut = true
	return nil
}

// PurgeUserData erases the stored diary.
func (a *Auth) PurgeUserData(ctx context.Context) error {
	if a.p == nil {
		return nil
	}
	return a.p.PurgeUserData(ctx)
}
