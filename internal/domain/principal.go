package domain

// Principal is the identity acting for the current request.
// The zero value is the anonymous principal.
type Principal struct {
	UserId   UserId   `json:"id,omitempty"`
	Username Username `json:"username,omitempty"`
}

var Anonymous = Principal{}

func PrincipalOf(user User) Principal {
	return Principal{UserId: user.Id, Username: user.Username}
}

func (p Principal) IsAnonymous() bool {
	return p.UserId == 0
}

// Owns reports whether p is the (non-anonymous) owner identified by ownerId.
func (p Principal) Owns(ownerId UserId) bool {
	return !p.IsAnonymous() && p.UserId == ownerId
}

// IsAdmin reports whether p is authenticated as the configured administrator.
func (p Principal) IsAdmin(adminUsername Username) bool {
	return !p.IsAnonymous() && adminUsername != "" && p.Username == adminUsername
}
