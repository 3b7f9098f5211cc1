package session

import "testing"

func TestMemoryStore_LoadSaveClear(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Load(); ok {
		t.Fatal("a new store must be empty")
	}

	store.Save(Session{Token: "abc", Role: "manager", UserID: "u1"})

	got, ok := store.Load()
	if !ok {
		t.Fatal("expected a session after save")
	}
	if got.Token != "abc" || got.Role != "manager" || got.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	store.Clear()
	if _, ok := store.Load(); ok {
		t.Fatal("expected no session after clear")
	}
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	store := NewMemoryStore()
	store.Save(Session{Token: "first"})
	store.Save(Session{Token: "second"})

	got, _ := store.Load()
	if got.Token != "second" {
		t.Fatalf("expected latest session, got %+v", got)
	}
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Save(Session{Token: "abc"})

	got, _ := store.Load()
	got.Token = "mutated"

	fresh, _ := store.Load()
	if fresh.Token != "abc" {
		t.Fatal("loading must not expose internal state")
	}
}
