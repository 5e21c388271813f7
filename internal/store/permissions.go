package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pagekeep/pagekeep/internal/perms"
	"github.com/pagekeep/pagekeep/internal/wiki"
)

// Row kinds in the PermissionsFor aggregate query.
const (
	rowKindBase       = 0
	rowKindOverwrite  = 1
	rowKindConfigured = 2
)

// PermissionsFor resolves the member's effective mask on the page with
// the given title, in one round-trip: the query gathers the base masks
// of the member's roles, the page's overwrite rows held by those roles,
// and a guild-configured marker, and perms.Resolve folds them.
//
// The member's role set always includes the everyone role (the guild
// id). A title that resolves to no page contributes no overwrite rows,
// so the result is the base-only resolution; existence is the concern
// of GetPage, not of permission checks.
//
// Overwrite rows participate only when BOTH hold: the row belongs to
// this page and its role is in the member's set. The JOIN through
// pages enforces the conjunction structurally, so an overwrite on an
// unrelated page can never leak into the resolution.
func (s *Store) PermissionsFor(ctx context.Context, member wiki.Member, title string) (wiki.Permissions, error) {
	roles := perms.RoleSet(member)
	placeholders := strings.Repeat("?, ", len(roles)-1) + "?"

	args := make([]any, 0, 2*len(roles)+3)
	for _, r := range roles {
		args = append(args, r)
	}
	args = append(args, member.GuildID, wiki.Fold(title))
	for _, r := range roles {
		args = append(args, r)
	}
	args = append(args, member.GuildID)

	rows, err := s.db.QueryContext(ctx, `
		SELECT 0 AS kind, permissions_mask AS allow_mask, 0 AS deny_mask
		FROM role_permissions
		WHERE role IN (`+placeholders+`)
		UNION ALL
		SELECT 1, pp.allow_mask, pp.deny_mask
		FROM page_permissions pp
		JOIN pages p ON pp.page_id = p.page_id
		WHERE p.guild = ? AND p.title_fold = ? AND pp.role IN (`+placeholders+`)
		UNION ALL
		SELECT 2, COUNT(*), 0
		FROM role_permissions
		WHERE guild = ?
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("permissions for: %w", classify(err))
	}
	defer rows.Close()

	var snap perms.Snapshot
	for rows.Next() {
		var kind int
		var allow, deny uint64
		if err := rows.Scan(&kind, &allow, &deny); err != nil {
			return 0, fmt.Errorf("permissions for: %w", err)
		}
		switch kind {
		case rowKindBase:
			snap.BaseMasks = append(snap.BaseMasks, wiki.Permissions(allow))
		case rowKindOverwrite:
			snap.Overwrites = append(snap.Overwrites, wiki.PageOverwrite{
				Allow: wiki.Permissions(allow),
				Deny:  wiki.Permissions(deny),
			})
		case rowKindConfigured:
			snap.GuildConfigured = allow > 0
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("permissions for: %w", classify(err))
	}

	return perms.Resolve(snap), nil
}
