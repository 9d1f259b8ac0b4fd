package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func (n note) Collection() string { return "note" }
func (n note) Key() string        { return n.ID }

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestSaveFetchRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	want := note{ID: "n1", Body: "hello"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got note
	if err := s.Fetch(ctx, "note", "n1", &got); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestFetchMissingIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	var got note
	err := s.Fetch(context.Background(), "note", "nope", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchCorruptReadsAsNotFound(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Set("note:bad", "{not json")

	var got note
	err := s.Fetch(context.Background(), "note", "bad", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt record err = %v, want ErrNotFound", err)
	}
}

func TestSaveIsIdempotentOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	n := note{ID: "n1", Body: "v"}
	if err := s.Save(ctx, n); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, n); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var got note
	if err := s.Fetch(ctx, "note", "n1", &got); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != n {
		t.Errorf("double save changed value: %+v", got)
	}
}

func TestListReturnsAllRecords(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, note{ID: id, Body: id}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// other collections and corrupt entries are not included
	mr.Set("other:x", `{"id":"x"}`)
	mr.Set("note:corrupt", "{{{")

	notes, err := List[note](ctx, s, "note")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("got %d notes, want 3", len(notes))
	}
}

func TestSaveTTLExpires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTTL(ctx, note{ID: "t1", Body: "x"}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got note
	if err := s.Fetch(ctx, "note", "t1", &got); err != nil {
		t.Fatalf("fetch before expiry: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if err := s.Fetch(ctx, "note", "t1", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after expiry = %v, want ErrNotFound", err)
	}
}

func TestSetOperations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.AddToSet(ctx, "meals:u1", "m1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddToSet(ctx, "meals:u1", "m2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// membership, not multiplicity
	if err := s.AddToSet(ctx, "meals:u1", "m1"); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	members, err := s.SetMembers(ctx, "meals:u1")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("got %d members, want 2", len(members))
	}

	if err := s.RemoveFromSet(ctx, "meals:u1", "m1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	members, err = s.SetMembers(ctx, "meals:u1")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0] != "m2" {
		t.Errorf("after removal: %v, want [m2]", members)
	}
}

func TestSetMembersMissingSetIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	members, err := s.SetMembers(context.Background(), "meals:nobody")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("got %v, want empty", members)
	}
}

func TestNameIndexSearchIsCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.IndexProductName(ctx, "Nutella", "3017620422003"); err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := s.IndexProductName(ctx, "Nutella Biscuits", "8000500310427"); err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := s.IndexProductName(ctx, "Peanut Butter", "x"); err != nil {
		t.Fatalf("index: %v", err)
	}

	codes, err := s.SearchProductNames(ctx, "NUTELLA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("got %d codes, want 2: %v", len(codes), codes)
	}
	found := map[string]bool{}
	for _, c := range codes {
		found[c] = true
	}
	if !found["3017620422003"] || !found["8000500310427"] {
		t.Errorf("unexpected codes: %v", codes)
	}
}
