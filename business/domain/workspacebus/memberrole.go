package workspacebus

import "fmt"

// The set of roles a user can hold inside a workspace.
var (
	MemberRoleOwner  = MemberRole{"OWNER"}
	MemberRoleMember = MemberRole{"MEMBER"}
)

var memberRoles = map[string]MemberRole{
	MemberRoleOwner.value:  MemberRoleOwner,
	MemberRoleMember.value: MemberRoleMember,
}

// MemberRole represents a workspace membership role in the system.
type MemberRole struct {
	value string
}

// String returns the name of the role.
func (r MemberRole) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r MemberRole) Equal(r2 MemberRole) bool {
	return r.value == r2.value
}

// ParseMemberRole parses the string value and returns a member role if one
// exists.
func ParseMemberRole(value string) (MemberRole, error) {
	role, exists := memberRoles[value]
	if !exists {
		return MemberRole{}, fmt.Errorf("invalid member role %q", value)
	}

	return role, nil
}
