package wiki

import "time"

// Page is a titled, guild-scoped document. PageID is an opaque unique
// key (a UUID string); CurrentRevisionID always references a revision
// owned by this page once creation has committed.
type Page struct {
	PageID            string
	GuildID           string
	Title             string
	CurrentRevisionID int64
}

// Revision is an immutable content snapshot. RevisionID is assigned by
// the store at insertion and is monotonic across all pages.
type Revision struct {
	RevisionID int64
	PageID     string
	AuthorID   string
	Content    string
	CreatedAt  time.Time
}

// PageWithRevision joins a page with one of its revisions, usually the
// current one. For history listings Title carries the page's display
// title next to each historical revision.
type PageWithRevision struct {
	Page     Page
	Revision Revision
}

// RolePermission is a guild-wide base capability mask for one role.
// The absence of a row is equivalent to Mask == PermDefault.
type RolePermission struct {
	RoleID  string
	GuildID string
	Mask    Permissions
}

// PageOverwrite adjusts one role's capabilities on one page. Allow bits
// are added on top of the base resolution, deny bits suppress allow
// bits; see the perms package for the exact combination rule.
type PageOverwrite struct {
	PageID string
	RoleID string
	Allow  Permissions
	Deny   Permissions
}

// Member identifies an actor whose roles have already been resolved by
// the caller. The everyone role (by convention the guild id itself) is
// appended by the permission engine and need not be listed.
type Member struct {
	UserID  string
	GuildID string
	RoleIDs []string
}
