package guard

import (
	"testing"

	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_DecisionTable(t *testing.T) {
	anon := session.Session{}
	member := session.Session{
		Token: "tok",
		User:  &session.User{ID: 1, Roles: []session.Role{session.RoleUser}},
	}
	admin := session.Session{
		Token: "tok",
		User:  &session.User{ID: 2, Roles: []session.Role{session.RoleUser, session.RoleAdmin}},
	}

	tests := []struct {
		name     string
		required Capability
		sess     session.Session
		want     Decision
	}{
		{"public allows anonymous", Public, anon, Allow()},
		{"public allows member", Public, member, Allow()},
		{"public allows admin", Public, admin, Allow()},
		{"authenticated redirects anonymous to login", Authenticated, anon, RedirectTo(PathLogin)},
		{"authenticated allows member", Authenticated, member, Allow()},
		{"admin redirects anonymous to login", Admin, anon, RedirectTo(PathLogin)},
		{"admin redirects member home", Admin, member, RedirectTo(PathHome)},
		{"admin allows admin", Admin, admin, Allow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Evaluate(tt.required, tt.sess))
		})
	}
}

func TestEvaluate_TokenWithoutProfile(t *testing.T) {
	// A token may exist before the profile fetch completes. That session
	// is authenticated but carries no roles.
	s := session.Session{Token: "tok"}

	require.Equal(t, Allow(), Evaluate(Authenticated, s))
	require.Equal(t, RedirectTo(PathHome), Evaluate(Admin, s))
}

func TestEvaluate_EmptyRoleSetIsNotAdmin(t *testing.T) {
	s := session.Session{Token: "T1", User: &session.User{ID: 1, Roles: []session.Role{}}}
	require.Equal(t, RedirectTo(PathHome), Evaluate(Admin, s))
}
