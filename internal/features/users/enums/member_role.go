package users_enums

// MemberRole is the access level of a workspace or project member.
// Larger values are more privileged.
type MemberRole int

const (
	MemberRoleGuest  MemberRole = 5
	MemberRoleViewer MemberRole = 10
	MemberRoleMember MemberRole = 15
	MemberRoleAdmin  MemberRole = 20
)

const DefaultMemberRole = MemberRoleViewer

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleGuest, MemberRoleViewer, MemberRoleMember, MemberRoleAdmin:
		return true
	default:
		return false
	}
}

func (r MemberRole) AtLeast(other MemberRole) bool {
	return r >= other
}
