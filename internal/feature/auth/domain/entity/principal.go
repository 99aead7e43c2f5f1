package entity

// Principal is the authenticated identity derived from a persisted user and its role.
// It is what the login token carries and what handlers see after authentication.
type Principal struct {
	UserID  uint
	Email   string
	Name    string
	Role    string
	Enabled bool
}

// NewPrincipal maps a user with a preloaded role to a principal.
func NewPrincipal(u *User) Principal {
	return Principal{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.RoleName(),
		Enabled: u.Enabled,
	}
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
