package roster_test

import (
	"context"
	"testing"

	"github.com/bhackerb/Leafs-Injury-Timetable-Roulette/internal/adapters/roster"
)

func TestEmbeddedStore_Roster(t *testing.T) {
	store := roster.NewEmbeddedStore()

	r, err := store.Roster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Team != "Toronto Maple Leafs" {
		t.Errorf("team = %q", r.Team)
	}
	if len(r.Players) == 0 {
		t.Fatal("roster is empty")
	}
	for i, p := range r.Players {
		if p.Name == "" {
			t.Errorf("player %d has no name", i)
		}
		if p.Position == "" {
			t.Errorf("player %d (%s) has no position", i, p.Name)
		}
	}
}

func TestEmbeddedStore_Cached(t *testing.T) {
	store := roster.NewEmbeddedStore()

	a, err := store.Roster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Roster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Players) != len(b.Players) {
		t.Errorf("roster changed between reads: %d vs %d", len(a.Players), len(b.Players))
	}
}
