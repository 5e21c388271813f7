package store

import (
	"context"
	"testing"
)

func collectTitles(t *testing.T, s *Store, memberID, guildID string) []string {
	t.Helper()
	var titles []string
	for title, err := range s.WatchList(context.Background(), memberID, guildID) {
		if err != nil {
			t.Fatalf("WatchList iteration failed: %v", err)
		}
		titles = append(titles, title)
	}
	return titles
}

func TestWatchPage_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Coolsville", "a")
	mustCreatePage(t, s, "guild-1", "Boringtown", "b")

	if err := s.WatchPage(ctx, "member-1", "guild-1", "coolsville"); err != nil {
		t.Fatalf("WatchPage() failed: %v", err)
	}
	if err := s.WatchPage(ctx, "member-1", "guild-1", "Boringtown"); err != nil {
		t.Fatalf("WatchPage() failed: %v", err)
	}

	titles := collectTitles(t, s, "member-1", "guild-1")
	if len(titles) != 2 || titles[0] != "Boringtown" || titles[1] != "Coolsville" {
		t.Errorf("watch list = %v, want [Boringtown Coolsville]", titles)
	}
}

func TestWatchPage_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Coolsville", "a")

	for i := 0; i < 2; i++ {
		if err := s.WatchPage(ctx, "member-1", "guild-1", "Coolsville"); err != nil {
			t.Fatalf("WatchPage() #%d failed: %v", i, err)
		}
	}
	if titles := collectTitles(t, s, "member-1", "guild-1"); len(titles) != 1 {
		t.Errorf("watch list has %d entries after double watch, want 1", len(titles))
	}
}

func TestWatchPage_UnknownPage(t *testing.T) {
	s := createTestStore(t)

	err := s.WatchPage(context.Background(), "member-1", "guild-1", "Nowhere")
	if !IsNotFound(err) {
		t.Fatalf("expected PageNotFoundError, got %v", err)
	}
}

func TestUnwatchPage(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Coolsville", "a")
	if err := s.WatchPage(ctx, "member-1", "guild-1", "Coolsville"); err != nil {
		t.Fatalf("WatchPage() failed: %v", err)
	}

	if err := s.UnwatchPage(ctx, "member-1", "guild-1", "Coolsville"); err != nil {
		t.Fatalf("UnwatchPage() failed: %v", err)
	}
	if titles := collectTitles(t, s, "member-1", "guild-1"); len(titles) != 0 {
		t.Errorf("watch list = %v after unwatch, want empty", titles)
	}

	// Unwatching a page that is not watched is fine.
	if err := s.UnwatchPage(ctx, "member-1", "guild-1", "Coolsville"); err != nil {
		t.Errorf("repeated UnwatchPage() failed: %v", err)
	}
}

func TestPageWatchers(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Coolsville", "a")
	for _, m := range []string{"member-b", "member-a"} {
		if err := s.WatchPage(ctx, m, "guild-1", "Coolsville"); err != nil {
			t.Fatalf("WatchPage(%s) failed: %v", m, err)
		}
	}

	watchers, err := s.PageWatchers(ctx, "guild-1", "coolsville")
	if err != nil {
		t.Fatalf("PageWatchers() failed: %v", err)
	}
	if len(watchers) != 2 || watchers[0] != "member-a" || watchers[1] != "member-b" {
		t.Errorf("watchers = %v, want [member-a member-b]", watchers)
	}
}
