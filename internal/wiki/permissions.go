package wiki

import "strings"

// Permissions is a bitmask of independent capability flags. Each bit can
// be granted or denied separately; there is no implied ordering between
// them.
type Permissions uint64

const (
	// PermView allows reading a page and its history.
	PermView Permissions = 1 << iota
	// PermRename allows changing a page's title.
	PermRename
	// PermEdit allows creating revisions.
	PermEdit
	// PermDelete allows deleting a page outright.
	PermDelete
	// PermManage allows editing role permissions and page overwrites.
	PermManage
)

// PermDefault is the capability set a role has when nothing has been
// configured for it.
const PermDefault = PermView | PermRename | PermEdit

// permNames is ordered by bit position.
var permNames = []struct {
	bit  Permissions
	name string
}{
	{PermView, "view"},
	{PermRename, "rename"},
	{PermEdit, "edit"},
	{PermDelete, "delete"},
	{PermManage, "manage_permissions"},
}

// Has reports whether every bit in p2 is set in p.
func (p Permissions) Has(p2 Permissions) bool {
	return p&p2 == p2
}

// Union returns the bits set in either mask.
func (p Permissions) Union(p2 Permissions) Permissions {
	return p | p2
}

// Minus returns p with the bits of p2 cleared.
func (p Permissions) Minus(p2 Permissions) Permissions {
	return p &^ p2
}

// String renders the set bits as a comma-separated list of flag names,
// in bit order. Unknown high bits are ignored. The zero mask renders as
// "none".
func (p Permissions) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, pn := range permNames {
		if p.Has(pn.bit) {
			names = append(names, pn.name)
		}
	}
	if names == nil {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParsePermission maps a flag name to its bit. The bool result is false
// for unknown names.
func ParsePermission(name string) (Permissions, bool) {
	for _, pn := range permNames {
		if pn.name == name {
			return pn.bit, true
		}
	}
	return 0, false
}
