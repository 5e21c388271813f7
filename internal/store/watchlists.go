package store

import (
	"context"
	"fmt"
	"iter"
)

// Watch lists track which members want edit notifications for which
// pages. The store only persists the sets; notification delivery lives
// outside, fed by RecentRevisions.

// WatchPage adds the page to the member's watch list. Idempotent.
// Returns PageNotFoundError if the title does not resolve.
func (s *Store) WatchPage(ctx context.Context, memberID, guildID, title string) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pageID, err := resolvePageID(ctx, tx, guildID, title)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO watch_lists (member, page_id) VALUES (?, ?)
		ON CONFLICT (member, page_id) DO NOTHING
	`, memberID, pageID)
	if err != nil {
		return fmt.Errorf("watch page: %w", classify(err))
	}
	return tx.Commit()
}

// UnwatchPage removes the page from the member's watch list.
// Returns PageNotFoundError if the title does not resolve; removing an
// unwatched page is not an error.
func (s *Store) UnwatchPage(ctx context.Context, memberID, guildID, title string) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pageID, err := resolvePageID(ctx, tx, guildID, title)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM watch_lists WHERE member = ? AND page_id = ?
	`, memberID, pageID)
	if err != nil {
		return fmt.Errorf("unwatch page: %w", classify(err))
	}
	return tx.Commit()
}

// WatchList returns the titles on the member's watch list within the
// guild, ordered by folded title ascending. Lazy; same resource rules
// as the other listing operations.
func (s *Store) WatchList(ctx context.Context, memberID, guildID string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT p.title
			FROM watch_lists w
			JOIN pages p ON w.page_id = p.page_id
			WHERE w.member = ? AND p.guild = ?
			ORDER BY p.title_fold ASC
		`, memberID, guildID)
		if err != nil {
			yield("", classify(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var title string
			if err := rows.Scan(&title); err != nil {
				yield("", err)
				return
			}
			if !yield(title, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield("", classify(err))
		}
	}
}

// PageWatchers returns the ids of members watching the page.
func (s *Store) PageWatchers(ctx context.Context, guildID, title string) ([]string, error) {
	pageID, err := resolvePageID(ctx, s.db, guildID, title)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT member FROM watch_lists WHERE page_id = ? ORDER BY member ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("page watchers: %w", classify(err))
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("page watchers: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("page watchers: %w", classify(err))
	}
	return members, nil
}
