package store

import (
	"context"
	"errors"
	"testing"
)

func TestAuthCurrentUser(t *testing.T) {
	a := NewAuth(testConfig{user: "tester"}, nil)

	id, ok := a.CurrentUserID(context.Background())
	if !ok || id != "tester" {
		t.Errorf("CurrentUserID = %q, %v; want the configured user", id, ok)
	}

	if _, ok := NewAuth(testConfig{}, nil).CurrentUserID(context.Background()); ok {
		t.Error("empty config reported a signed-in user")
	}
}

func TestSignOutEndsSession(t *testing.T) {
	a := NewAuth(testConfig{user: "tester"}, nil)
	ctx := context.Background()

	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if _, ok := a.CurrentUserID(ctx); ok {
		t.Error("user still signed in after SignOut")
	}
}

func TestDeleteAccountRequiresUser(t *testing.T) {
	ctx := context.Background()

	a := NewAuth(testConfig{}, nil)
	if err := a.DeleteAccount(ctx); !errors.Is(err, ErrNoUser) {
		t.Errorf("DeleteAccount with nobody signed in = %v, want ErrNoUser", err)
	}

	a = NewAuth(testConfig{user: "tester"}, nil)
	if err := a.DeleteAccount(ctx); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if _, ok := a.CurrentUserID(ctx); ok {
		t.Error("user still signed in after account deletion")
	}
	if err := a.DeleteAccount(ctx); !errors.Is(err, ErrNoUser) {
		t.Errorf("second DeleteAccount = %v, want ErrNoUser", err)
	}
}

func TestPurgeUserDataErasesStore(t *testing.T) {
	p := testStore(t)
	a := NewAuth(testConfig{user: "tester"}, p)
	ctx := context.Background()

	day := testDay(t, "2024-06-01")
	if _, err := p.Attach(day, "clip"); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if err := a.PurgeUserData(ctx); err != nil {
		t.Fatalf("PurgeUserData returned error: %v", err)
	}
	if _, ok, _ := p.Get(day); ok {
		t.Error("diary survived the purge")
	}
}
