package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// pageRevisionColumns is the SELECT list shared by every query that
// joins a page with one of its revisions.
const pageRevisionColumns = `
	p.page_id, p.guild, p.title, p.current_revision_id,
	r.revision_id, r.author, r.content, r.created_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPageRevision(row rowScanner) (wiki.PageWithRevision, error) {
	var pr wiki.PageWithRevision
	var createdAt int64
	err := row.Scan(
		&pr.Page.PageID, &pr.Page.GuildID, &pr.Page.Title, &pr.Page.CurrentRevisionID,
		&pr.Revision.RevisionID, &pr.Revision.AuthorID, &pr.Revision.Content, &createdAt,
	)
	if err != nil {
		return wiki.PageWithRevision{}, err
	}
	pr.Revision.PageID = pr.Page.PageID
	pr.Revision.CreatedAt = time.Unix(createdAt, 0).UTC()
	return pr, nil
}

// CreatePage creates a page and its first revision in one transaction.
// Returns PageExistsError if the title collides case-insensitively with
// an existing page in the guild; the existing page is left untouched.
func (s *Store) CreatePage(ctx context.Context, guildID, title, content, authorID string) (wiki.PageWithRevision, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return wiki.PageWithRevision{}, err
	}
	defer tx.Rollback()

	pageID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (page_id, guild, title, title_fold, current_revision_id)
		VALUES (?, ?, ?, ?, 0)
	`, pageID, guildID, title, wiki.Fold(title))
	if err != nil {
		if isUniqueViolation(err) {
			return wiki.PageWithRevision{}, &PageExistsError{Title: title}
		}
		return wiki.PageWithRevision{}, fmt.Errorf("create page: %w", err)
	}

	rev, err := s.appendRevision(ctx, tx, pageID, content, authorID)
	if err != nil {
		return wiki.PageWithRevision{}, err
	}

	if err := tx.Commit(); err != nil {
		return wiki.PageWithRevision{}, fmt.Errorf("create page: %w", classify(err))
	}

	return wiki.PageWithRevision{
		Page: wiki.Page{
			PageID:            pageID,
			GuildID:           guildID,
			Title:             title,
			CurrentRevisionID: rev.RevisionID,
		},
		Revision: rev,
	}, nil
}

// appendRevision inserts a revision and repoints the owning page's
// current_revision_id. Must run inside the caller's transaction so the
// two commit together.
func (s *Store) appendRevision(ctx context.Context, tx *sql.Tx, pageID, content, authorID string) (wiki.Revision, error) {
	createdAt := s.now().UTC().Truncate(time.Second)
	res, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (page_id, author, content, created_at)
		VALUES (?, ?, ?, ?)
	`, pageID, authorID, content, createdAt.Unix())
	if err != nil {
		return wiki.Revision{}, fmt.Errorf("append revision: %w", err)
	}

	revisionID, err := res.LastInsertId()
	if err != nil {
		return wiki.Revision{}, fmt.Errorf("append revision: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pages SET current_revision_id = ? WHERE page_id = ?
	`, revisionID, pageID)
	if err != nil {
		return wiki.Revision{}, fmt.Errorf("repoint current revision: %w", err)
	}

	return wiki.Revision{
		RevisionID: revisionID,
		PageID:     pageID,
		AuthorID:   authorID,
		Content:    content,
		CreatedAt:  createdAt,
	}, nil
}

// GetPage returns the page joined with its current revision. Title
// matching is case-insensitive. Returns PageNotFoundError if absent.
func (s *Store) GetPage(ctx context.Context, guildID, title string) (wiki.PageWithRevision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pageRevisionColumns+`
		FROM pages p
		JOIN revisions r ON p.current_revision_id = r.revision_id
		WHERE p.guild = ? AND p.title_fold = ?
	`, guildID, wiki.Fold(title))

	pr, err := scanPageRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return wiki.PageWithRevision{}, &PageNotFoundError{Title: title}
	}
	if err != nil {
		return wiki.PageWithRevision{}, fmt.Errorf("get page: %w", classify(err))
	}
	return pr, nil
}

// RevisePage appends a revision to an existing page and repoints its
// current revision, all in one transaction. Returns PageNotFoundError
// if the title does not resolve.
func (s *Store) RevisePage(ctx context.Context, guildID, title, content, authorID string) (wiki.Revision, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return wiki.Revision{}, err
	}
	defer tx.Rollback()

	pageID, err := resolvePageID(ctx, tx, guildID, title)
	if err != nil {
		return wiki.Revision{}, err
	}

	rev, err := s.appendRevision(ctx, tx, pageID, content, authorID)
	if err != nil {
		return wiki.Revision{}, err
	}

	if err := tx.Commit(); err != nil {
		return wiki.Revision{}, fmt.Errorf("revise page: %w", classify(err))
	}
	return rev, nil
}

// RenamePage changes a page's title in place. A single conditional
// UPDATE guarded by the affected-row count; revision history is
// untouched. Returns PageExistsError when newTitle collides
// case-insensitively with a different page in the guild, and
// PageNotFoundError when title does not resolve.
func (s *Store) RenamePage(ctx context.Context, guildID, title, newTitle string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pages SET title = ?, title_fold = ?
		WHERE guild = ? AND title_fold = ?
	`, newTitle, wiki.Fold(newTitle), guildID, wiki.Fold(title))
	if err != nil {
		if isUniqueViolation(err) {
			return &PageExistsError{Title: newTitle}
		}
		return fmt.Errorf("rename page: %w", classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename page: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return &PageNotFoundError{Title: title}
	default:
		// The (guild, title_fold) unique index makes this unreachable.
		return fmt.Errorf("rename page: updated %d rows, want 1", n)
	}
}

// DeletePage removes a page, its revisions, its overwrites, and its
// watch entries in one statement via foreign key cascade. This is the
// one operation that discards history.
func (s *Store) DeletePage(ctx context.Context, guildID, title string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM pages WHERE guild = ? AND title_fold = ?
	`, guildID, wiki.Fold(title))
	if err != nil {
		return fmt.Errorf("delete page: %w", classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if n == 0 {
		return &PageNotFoundError{Title: title}
	}
	return nil
}

// AllPages returns every page in the guild joined with its current
// revision, ordered by folded title ascending. The sequence is lazy and
// restartable: the query runs when iteration starts and the underlying
// rows are released when it stops, however it stops.
func (s *Store) AllPages(ctx context.Context, guildID string) iter.Seq2[wiki.PageWithRevision, error] {
	return s.streamPages(ctx, `
		SELECT `+pageRevisionColumns+`
		FROM pages p
		JOIN revisions r ON p.current_revision_id = r.revision_id
		WHERE p.guild = ?
		ORDER BY p.title_fold ASC
	`, guildID)
}

// streamPages runs a page/revision join query lazily. The first pull issues
// the query; rows are closed on exhaustion, early break, or error. A
// scan or iteration error is yielded as the final element.
func (s *Store) streamPages(ctx context.Context, query string, args ...any) iter.Seq2[wiki.PageWithRevision, error] {
	return func(yield func(wiki.PageWithRevision, error) bool) {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(wiki.PageWithRevision{}, classify(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			pr, err := scanPageRevision(rows)
			if err != nil {
				yield(wiki.PageWithRevision{}, err)
				return
			}
			if !yield(pr, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(wiki.PageWithRevision{}, classify(err))
		}
	}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolvePageID maps a (guild, title) pair to its page id under
// case-insensitive comparison.
func resolvePageID(ctx context.Context, q queryer, guildID, title string) (string, error) {
	var pageID string
	err := q.QueryRowContext(ctx, `
		SELECT page_id FROM pages WHERE guild = ? AND title_fold = ?
	`, guildID, wiki.Fold(title)).Scan(&pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &PageNotFoundError{Title: title}
	}
	if err != nil {
		return "", fmt.Errorf("resolve page: %w", classify(err))
	}
	return pageID, nil
}
