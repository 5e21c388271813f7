// Package perms implements permission resolution for a (member, page)
// pair. It is pure combination logic: the store feeds it the rows it
// fetched in one round-trip, and Resolve folds them into an effective
// mask.
package perms

import (
	"slices"

	"github.com/pagekeep/pagekeep/internal/wiki"
)

// Snapshot is everything the resolver needs about one (member, page)
// pair, as read from storage in a single query.
type Snapshot struct {
	// GuildConfigured is true when the guild has at least one role
	// permission row, for any role, not just the member's.
	GuildConfigured bool

	// BaseMasks are the base masks of the member's roles. Roles without
	// a configured row contribute no entry.
	BaseMasks []wiki.Permissions

	// Overwrites are the page's overwrite rows whose role is held by
	// the member. The row filter must conjoin both conditions: the row
	// belongs to this page AND its role is in the member's role set.
	// Overwrite rows for other pages never participate.
	Overwrites []wiki.PageOverwrite
}

// Resolve computes the effective mask:
//
//	Base      = OR of all base masks
//	Allow     = OR of all overwrite allow masks
//	Deny      = OR of all overwrite deny masks
//	Effective = Base | (Allow &^ Deny)
//
// Deny suppresses only the Allow term. A bit granted through a role's
// base mask survives a deny overwrite; revoking it requires clearing it
// from the base mask itself.
//
// A guild with no role permission rows at all resolves to PermDefault
// unconditionally, so a fresh guild behaves sanely before anyone has
// touched permission config.
func Resolve(snap Snapshot) wiki.Permissions {
	if !snap.GuildConfigured {
		return wiki.PermDefault
	}

	var base wiki.Permissions
	for _, m := range snap.BaseMasks {
		base |= m
	}

	var allow, deny wiki.Permissions
	for _, ow := range snap.Overwrites {
		allow |= ow.Allow
		deny |= ow.Deny
	}

	return base | (allow &^ deny)
}

// RoleSet returns the member's role ids with the everyone role (the
// guild id, by platform convention) appended, deduplicated, order
// preserved.
func RoleSet(member wiki.Member) []string {
	set := make([]string, 0, len(member.RoleIDs)+1)
	for _, id := range member.RoleIDs {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	if !slices.Contains(set, member.GuildID) {
		set = append(set, member.GuildID)
	}
	return set
}
