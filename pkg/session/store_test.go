package session

import (
	"context"
	"testing"

	"salongate/pkg/lifecycle"
)

func TestStore_SetAndCurrent(t *testing.T) {
	store := NewStore()

	if _, ok := store.Current(); ok {
		t.Error("fresh store reports a live session")
	}

	store.Set(Session{Token: "tok", Role: lifecycle.RoleCustomer, UserID: 9})

	sess, ok := store.Current()
	if !ok {
		t.Fatal("no session after Set")
	}
	if sess.Token != "tok" || sess.Role != lifecycle.RoleCustomer {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestStore_LogoutNotifiesEverySubscriber(t *testing.T) {
	store := NewStore()
	store.Set(Session{Token: "tok", Role: lifecycle.RoleCustomer})

	first, cancelFirst := store.Subscribe()
	second, cancelSecond := store.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	store.Logout()

	for name, ch := range map[string]<-chan Event{"first": first, "second": second} {
		select {
		case ev := <-ch:
			if ev.Type != EventLogout {
				t.Errorf("%s subscriber got %s, want logout", name, ev.Type)
			}
		default:
			t.Errorf("%s subscriber missed the logout event", name)
		}
	}

	if _, ok := store.Current(); ok {
		t.Error("session still live after logout")
	}
}

func TestStore_LogoutWithoutSessionIsQuiet(t *testing.T) {
	store := NewStore()
	events, cancel := store.Subscribe()
	defer cancel()

	store.Logout()

	select {
	case ev := <-events:
		t.Errorf("unexpected event %s from no-op logout", ev.Type)
	default:
	}
}

func TestStore_CancelStopsDelivery(t *testing.T) {
	store := NewStore()
	events, cancel := store.Subscribe()
	cancel()

	store.Set(Session{Token: "tok"})

	// The channel is closed on cancel; a received zero value means closed.
	if ev, open := <-events; open {
		t.Errorf("cancelled subscriber received %s", ev.Type)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("empty context reports a session")
	}

	want := Session{Token: "tok", Role: lifecycle.RoleStaff, UserID: 3}
	ctx = WithSession(ctx, want)

	got, ok := FromContext(ctx)
	if !ok || got != want {
		t.Errorf("FromContext = (%+v, %v), want (%+v, true)", got, ok, want)
	}
}
