package store

import (
	"context"
	"iter"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagekeep/pagekeep/internal/testutil"
	"github.com/pagekeep/pagekeep/internal/wiki"
)

// createTestStore creates a store on a throwaway database with a
// deterministic clock, so revision timestamps are reproducible.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	s.now = testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second).Now
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreatePage creates a page or fails the test.
func mustCreatePage(t *testing.T, s *Store, guild, title, content string) wiki.PageWithRevision {
	t.Helper()
	pr, err := s.CreatePage(context.Background(), guild, title, content, "author-1")
	if err != nil {
		t.Fatalf("CreatePage(%q) failed: %v", title, err)
	}
	return pr
}

// collectPages drains a page sequence, failing the test on any yielded
// error.
func collectPages(t *testing.T, seq iter.Seq2[wiki.PageWithRevision, error]) []wiki.PageWithRevision {
	t.Helper()
	var out []wiki.PageWithRevision
	for pr, err := range seq {
		if err != nil {
			t.Fatalf("iteration failed: %v", err)
		}
		out = append(out, pr)
	}
	return out
}
