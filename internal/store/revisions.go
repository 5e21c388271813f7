package store

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// PageRevisions returns every revision of the page, newest first, each
// joined with the page's display title. Yields PageNotFoundError if the
// title does not resolve; the check runs when iteration starts, not
// when the sequence is built.
func (s *Store) PageRevisions(ctx context.Context, guildID, title string) iter.Seq2[wiki.PageWithRevision, error] {
	return func(yield func(wiki.PageWithRevision, error) bool) {
		pageID, err := resolvePageID(ctx, s.db, guildID, title)
		if err != nil {
			yield(wiki.PageWithRevision{}, err)
			return
		}
		for pr, err := range s.streamPages(ctx, `
			SELECT `+pageRevisionColumns+`
			FROM pages p
			JOIN revisions r ON r.page_id = p.page_id
			WHERE p.page_id = ?
			ORDER BY r.revision_id DESC
		`, pageID) {
			if !yield(pr, err) {
				return
			}
		}
	}
}

// RecentRevisions returns every revision in the guild created strictly
// after cutoff, newest first. This is the feed consumed by the watch
// list notifier.
func (s *Store) RecentRevisions(ctx context.Context, guildID string, cutoff time.Time) iter.Seq2[wiki.PageWithRevision, error] {
	return s.streamPages(ctx, `
		SELECT `+pageRevisionColumns+`
		FROM pages p
		JOIN revisions r ON r.page_id = p.page_id
		WHERE p.guild = ? AND r.created_at > ?
		ORDER BY r.revision_id DESC
	`, guildID, cutoff.Unix())
}

// IndividualRevisions resolves a batch of revision ids to full rows,
// ordered oldest to newest, the shape a diff renderer wants. All
// distinct ids must resolve within the guild; otherwise the whole batch
// fails with ValidationError and no partial result is returned.
func (s *Store) IndividualRevisions(ctx context.Context, guildID string, ids []int64) ([]wiki.PageWithRevision, error) {
	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	if len(distinct) == 0 {
		return []wiki.PageWithRevision{}, nil
	}

	placeholders := strings.Repeat("?, ", len(distinct)-1) + "?"
	args := make([]any, 0, len(distinct)+1)
	args = append(args, guildID)
	for _, id := range distinct {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pageRevisionColumns+`
		FROM pages p
		JOIN revisions r ON r.page_id = p.page_id
		WHERE p.guild = ? AND r.revision_id IN (`+placeholders+`)
		ORDER BY r.revision_id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("individual revisions: %w", classify(err))
	}
	defer rows.Close()

	var revs []wiki.PageWithRevision
	for rows.Next() {
		pr, err := scanPageRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("individual revisions: %w", err)
		}
		revs = append(revs, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("individual revisions: %w", classify(err))
	}

	if len(revs) < len(distinct) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("requested %d revisions but only %d exist", len(distinct), len(revs)),
		}
	}
	return revs, nil
}
