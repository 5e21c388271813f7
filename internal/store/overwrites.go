package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// Role permission and page overwrite writes are upserts: idempotent at
// the row level, and mask-clearing never deletes a row. The only
// destructor is UnsetPageOverwrite.

// RolePermissions returns a role's guild-wide base mask. An absent row
// is equivalent to the default mask.
func (s *Store) RolePermissions(ctx context.Context, roleID string) (wiki.Permissions, error) {
	var mask uint64
	err := s.db.QueryRowContext(ctx, `
		SELECT permissions_mask FROM role_permissions WHERE role = ?
	`, roleID).Scan(&mask)
	if errors.Is(err, sql.ErrNoRows) {
		return wiki.PermDefault, nil
	}
	if err != nil {
		return 0, fmt.Errorf("role permissions: %w", classify(err))
	}
	return wiki.Permissions(mask), nil
}

// SetRolePermissions replaces a role's entire base mask.
func (s *Store) SetRolePermissions(ctx context.Context, guildID, roleID string, mask wiki.Permissions) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_permissions (role, guild, permissions_mask)
		VALUES (?, ?, ?)
		ON CONFLICT (role) DO UPDATE SET permissions_mask = excluded.permissions_mask
	`, roleID, guildID, uint64(mask))
	if err != nil {
		return fmt.Errorf("set role permissions: %w", classify(err))
	}
	return nil
}

// AllowRolePermissions ORs extra bits into a role's base mask. The
// inserted and merged value always includes the default bits, so a
// role's base never drops below the default through this path.
func (s *Store) AllowRolePermissions(ctx context.Context, guildID, roleID string, mask wiki.Permissions) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_permissions (role, guild, permissions_mask)
		VALUES (?, ?, ?)
		ON CONFLICT (role) DO UPDATE
		SET permissions_mask = role_permissions.permissions_mask | excluded.permissions_mask
	`, roleID, guildID, uint64(mask|wiki.PermDefault))
	if err != nil {
		return fmt.Errorf("allow role permissions: %w", classify(err))
	}
	return nil
}

// DenyRolePermissions clears bits from a role's base mask. An absent
// row materializes as the default mask minus the cleared bits; a row
// cleared to zero is kept.
func (s *Store) DenyRolePermissions(ctx context.Context, guildID, roleID string, mask wiki.Permissions) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_permissions (role, guild, permissions_mask)
		VALUES (?, ?, ?)
		ON CONFLICT (role) DO UPDATE
		SET permissions_mask = role_permissions.permissions_mask & ~?
	`, roleID, guildID, uint64(wiki.PermDefault&^mask), uint64(mask))
	if err != nil {
		return fmt.Errorf("deny role permissions: %w", classify(err))
	}
	return nil
}

// PageOverwrites returns every overwrite row on the page, ordered by
// role for stable output. Returns PageNotFoundError if the title does
// not resolve.
func (s *Store) PageOverwrites(ctx context.Context, guildID, title string) ([]wiki.PageOverwrite, error) {
	pageID, err := resolvePageID(ctx, s.db, guildID, title)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT page_id, role, allow_mask, deny_mask
		FROM page_permissions
		WHERE page_id = ?
		ORDER BY role ASC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("page overwrites: %w", classify(err))
	}
	defer rows.Close()

	overwrites := []wiki.PageOverwrite{}
	for rows.Next() {
		var ow wiki.PageOverwrite
		var allow, deny uint64
		if err := rows.Scan(&ow.PageID, &ow.RoleID, &allow, &deny); err != nil {
			return nil, fmt.Errorf("page overwrites: %w", err)
		}
		ow.Allow = wiki.Permissions(allow)
		ow.Deny = wiki.Permissions(deny)
		overwrites = append(overwrites, ow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("page overwrites: %w", classify(err))
	}
	return overwrites, nil
}

// SetPageOverwrite replaces both masks for the (page, role) pair.
func (s *Store) SetPageOverwrite(ctx context.Context, guildID, title, roleID string, allow, deny wiki.Permissions) error {
	return s.upsertOverwrite(ctx, guildID, title, "set page overwrite", `
		INSERT INTO page_permissions (page_id, role, allow_mask, deny_mask)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (page_id, role) DO UPDATE
		SET allow_mask = excluded.allow_mask, deny_mask = excluded.deny_mask
	`, roleID, uint64(allow), uint64(deny))
}

// AddPageOverwrite ORs extra bits into both masks for the (page, role)
// pair, creating the row on first grant.
func (s *Store) AddPageOverwrite(ctx context.Context, guildID, title, roleID string, allow, deny wiki.Permissions) error {
	return s.upsertOverwrite(ctx, guildID, title, "add page overwrite", `
		INSERT INTO page_permissions (page_id, role, allow_mask, deny_mask)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (page_id, role) DO UPDATE
		SET allow_mask = page_permissions.allow_mask | excluded.allow_mask,
		    deny_mask = page_permissions.deny_mask | excluded.deny_mask
	`, roleID, uint64(allow), uint64(deny))
}

// ClearPageOverwriteBits clears the given bits from both masks,
// reverting them to base resolution. The row survives even when both
// masks reach zero; use UnsetPageOverwrite to drop it.
func (s *Store) ClearPageOverwriteBits(ctx context.Context, guildID, title, roleID string, mask wiki.Permissions) error {
	return s.upsertOverwrite(ctx, guildID, title, "clear page overwrite bits", `
		INSERT INTO page_permissions (page_id, role, allow_mask, deny_mask)
		VALUES (?, ?, 0, 0)
		ON CONFLICT (page_id, role) DO UPDATE
		SET allow_mask = page_permissions.allow_mask & ~?,
		    deny_mask = page_permissions.deny_mask & ~?
	`, roleID, uint64(mask), uint64(mask))
}

// UnsetPageOverwrite deletes the (page, role) row entirely; the role
// reverts to base-only resolution on the page. Deleting an absent row
// is not an error.
func (s *Store) UnsetPageOverwrite(ctx context.Context, guildID, title, roleID string) error {
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
		DELETE FROM page_permissions WHERE page_id = ? AND role = ?
	`, pageID, roleID)
	if err != nil {
		return fmt.Errorf("unset page overwrite: %w", classify(err))
	}
	return tx.Commit()
}

// upsertOverwrite resolves the page and applies one overwrite upsert in
// a single transaction.
func (s *Store) upsertOverwrite(ctx context.Context, guildID, title, op, query, roleID string, args ...any) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pageID, err := resolvePageID(ctx, tx, guildID, title)
	if err != nil {
		return err
	}

	execArgs := append([]any{pageID, roleID}, args...)
	if _, err := tx.ExecContext(ctx, query, execArgs...); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}
