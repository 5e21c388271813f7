package store

import (
	"context"
	"testing"
	"time"
)

func TestPageRevisions_NotFound(t *testing.T) {
	s := createTestStore(t)

	var got error
	for _, err := range s.PageRevisions(context.Background(), "guild-1", "Nowhere") {
		got = err
		break
	}
	if !IsNotFound(got) {
		t.Fatalf("expected PageNotFoundError, got %v", got)
	}
}

func TestPageRevisions_CarriesDisplayTitle(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Coolsville", "v1")
	if _, err := s.RevisePage(ctx, "guild-1", "Coolsville", "v2", "author-2"); err != nil {
		t.Fatalf("RevisePage() failed: %v", err)
	}

	for _, pr := range collectPages(t, s.PageRevisions(ctx, "guild-1", "coolsville")) {
		if pr.Page.Title != "Coolsville" {
			t.Errorf("revision row title = %q, want %q", pr.Page.Title, "Coolsville")
		}
	}
}

func TestRecentRevisions_StrictCutoff(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// The deterministic clock stamps successive revisions one second
	// apart starting at 2024-01-01 00:00:01.
	mustCreatePage(t, s, "guild-1", "One", "a")   // 00:00:01
	mustCreatePage(t, s, "guild-1", "Two", "b")   // 00:00:02
	mustCreatePage(t, s, "guild-1", "Three", "c") // 00:00:03

	cutoff := time.Date(2024, 1, 1, 0, 0, 2, 0, time.UTC)
	recent := collectPages(t, s.RecentRevisions(ctx, "guild-1", cutoff))

	// Strictly after: the 00:00:02 revision is excluded.
	if len(recent) != 1 {
		t.Fatalf("got %d recent revisions, want 1", len(recent))
	}
	if recent[0].Page.Title != "Three" {
		t.Errorf("recent revision title = %q, want %q", recent[0].Page.Title, "Three")
	}
}

func TestRecentRevisions_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustCreatePage(t, s, "guild-1", "Page", "v1")
	if _, err := s.RevisePage(ctx, "guild-1", "Page", "v2", "author"); err != nil {
		t.Fatalf("RevisePage() failed: %v", err)
	}
	if _, err := s.RevisePage(ctx, "guild-1", "Page", "v3", "author"); err != nil {
		t.Fatalf("RevisePage() failed: %v", err)
	}

	recent := collectPages(t, s.RecentRevisions(ctx, "guild-1", time.Time{}))
	if len(recent) != 3 {
		t.Fatalf("got %d revisions, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Revision.RevisionID >= recent[i-1].Revision.RevisionID {
			t.Errorf("revisions not newest first at index %d", i)
		}
	}
}

func TestRecentRevisions_ScopedToGuild(t *testing.T) {
	s := createTestStore(t)

	mustCreatePage(t, s, "guild-1", "Mine", "a")
	mustCreatePage(t, s, "guild-2", "Theirs", "b")

	recent := collectPages(t, s.RecentRevisions(context.Background(), "guild-1", time.Time{}))
	if len(recent) != 1 || recent[0].Page.Title != "Mine" {
		t.Errorf("guild scoping leaked: %+v", recent)
	}
}

func TestIndividualRevisions_OldestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := mustCreatePage(t, s, "guild-1", "Page", "v1")
	rev2, err := s.RevisePage(ctx, "guild-1", "Page", "v2", "author")
	if err != nil {
		t.Fatalf("RevisePage() failed: %v", err)
	}

	// Request newest first; results come back oldest first.
	revs, err := s.IndividualRevisions(ctx, "guild-1", []int64{rev2.RevisionID, created.Revision.RevisionID})
	if err != nil {
		t.Fatalf("IndividualRevisions() failed: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("got %d revisions, want 2", len(revs))
	}
	if revs[0].Revision.Content != "v1" || revs[1].Revision.Content != "v2" {
		t.Errorf("order wrong: %q then %q", revs[0].Revision.Content, revs[1].Revision.Content)
	}
}

func TestIndividualRevisions_MissingIDFailsWholeBatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := mustCreatePage(t, s, "guild-1", "Page", "v1")

	revs, err := s.IndividualRevisions(ctx, "guild-1", []int64{created.Revision.RevisionID, 999999})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if revs != nil {
		t.Errorf("got partial result %v, want none", revs)
	}
}

func TestIndividualRevisions_DuplicateIDsCountOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := mustCreatePage(t, s, "guild-1", "Page", "v1")

	revs, err := s.IndividualRevisions(ctx, "guild-1",
		[]int64{created.Revision.RevisionID, created.Revision.RevisionID})
	if err != nil {
		t.Fatalf("IndividualRevisions() failed: %v", err)
	}
	if len(revs) != 1 {
		t.Errorf("got %d revisions for duplicated id, want 1", len(revs))
	}
}

func TestIndividualRevisions_WrongGuild(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := mustCreatePage(t, s, "guild-1", "Page", "v1")

	_, err := s.IndividualRevisions(ctx, "guild-2", []int64{created.Revision.RevisionID})
	if !IsValidation(err) {
		t.Fatalf("revision from another guild should fail validation, got %v", err)
	}
}

func TestIndividualRevisions_EmptyBatch(t *testing.T) {
	s := createTestStore(t)

	revs, err := s.IndividualRevisions(context.Background(), "guild-1", nil)
	if err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if len(revs) != 0 {
		t.Errorf("empty batch returned %d revisions", len(revs))
	}
}
