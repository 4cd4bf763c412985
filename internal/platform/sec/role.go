// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the role claim of an end-user access token. It matches the
// users.account.role check constraint.
type UserRole string

const (
	// RoleAdmin is a staff account. Admin-only routes still require the admin
	// session cookie; this role only matters for member-facing checks.
	RoleAdmin UserRole = "admin"

	// RoleModerator can read the report queue from a normal user session.
	RoleModerator UserRole = "moderator"

	// RoleMember is every other signed-in user.
	RoleMember UserRole = "member"
)

// roleRank orders roles. Unknown roles rank below members.
var roleRank = map[UserRole]int{
	RoleMember:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r is target or above.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] >= roleRank[target] && roleRank[r] > 0
}
