package domain

import "fmt"

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupportTI  Role = "Support TI"
	RoleSistemasMV Role = "Sistemas MV"
	RoleViewer     Role = "Viewer"
)

// ParseRole rejects anything outside the closed role set. External input
// (JSON bodies, JWT claims) must pass through here before a Role is trusted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSupportTI, RoleSistemasMV, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsTeamRole reports whether the role is one of the two team roles, i.e.
// neither Admin nor Viewer.
func (r Role) IsTeamRole() bool {
	return r == RoleSupportTI || r == RoleSistemasMV
}

// HomeTeam returns the team a team role belongs to. Only meaningful when
// IsTeamRole is true.
func (r Role) HomeTeam() (Team, bool) {
	switch r {
	case RoleSupportTI:
		return TeamSupportTI, true
	case RoleSistemasMV:
		return TeamSistemasMV, true
	}
	return "", false
}
