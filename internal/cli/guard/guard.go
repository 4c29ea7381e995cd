// Package guard decides, per navigation target, whether the current
// session may view it. Evaluation is a pure function of its inputs so a
// caller can gate rendering synchronously, before any protected content
// is produced.
package guard

import "github.com/devexp-dev/devexp/internal/cli/session"

// Capability is the access level a view requires.
type Capability int

const (
	Public Capability = iota
	Authenticated
	Admin
)

func (c Capability) String() string {
	switch c {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Navigation targets used by redirect decisions.
const (
	PathHome  = "/"
	PathLogin = "/auth"
)

// Decision is the outcome of an evaluation: either allow, or redirect to
// a target path.
type Decision struct {
	Allowed  bool
	Redirect string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Evaluate maps a required capability and the current session to a
// decision. Unauthenticated requesters are sent to login regardless of
// the capability asked for; authenticated non-admins asking for admin
// views are sent home.
func Evaluate(required Capability, s session.Session) Decision {
	switch required {
	case Public:
		return Allow()
	case Authenticated:
		if !s.Authenticated() {
			return RedirectTo(PathLogin)
		}
		return Allow()
	case Admin:
		if !s.Authenticated() {
			return RedirectTo(PathLogin)
		}
		if !s.User.IsAdmin() {
			return RedirectTo(PathHome)
		}
		return Allow()
	default:
		return RedirectTo(PathHome)
	}
}
