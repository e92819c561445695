package domain

import "fmt"

// Role is the privilege tier of a Telegram identity.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// roleRank orders roles by privilege. Guests rank lowest; every capability
// check is an explicit AtLeast comparison against a minimum role.
var roleRank = map[Role]int{
	RoleGuest:     0,
	RoleUser:      1,
	RoleAdmin:     2,
	RoleDeveloper: 3,
}

// AtLeast reports whether r grants at least the privilege of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Grantable reports whether the role can be assigned to a user. Guest is the
// implicit absence of any grant and is never stored.
func (r Role) Grantable() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

// ParseRole converts a user-supplied token into a grantable Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Grantable() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}
