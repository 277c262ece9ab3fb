package domain

// Principal is the resolved caller of a request. It is derived from a
// validated token and a fresh user lookup and is never persisted.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

// PrincipalFromUser projects a credential record onto a principal.
func PrincipalFromUser(u *User) Principal {
	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}
