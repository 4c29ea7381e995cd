package session

// Role is a server-side authority marker carried in the user snapshot.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User is the cached profile snapshot returned by the API at login and
// refreshed on profile edits.
type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Roles           []Role `json:"roles"`
	ExperienceLevel string `json:"experienceLevel"`
	Avatar          string `json:"avatar,omitempty"`
	GitHub          string `json:"github,omitempty"`
	Bio             string `json:"bio,omitempty"`
}

// HasRole reports whether the role marker is present in the snapshot.
func (u *User) HasRole(r Role) bool {
	if u == nil {
		return false
	}
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin reports administrator membership. All admin checks go through
// this predicate so the role marker is spelled in exactly one place.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// Session is the client-held proof of identity: a bearer token plus the
// cached profile snapshot. The zero value is the logged-out sentinel.
type Session struct {
	Token string
	User  *User
}

// Empty reports whether the session is the logged-out sentinel.
func (s Session) Empty() bool {
	return s.Token == ""
}

// Authenticated reports whether the session carries a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
