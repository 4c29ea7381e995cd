package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/session"
)

// memStore is a simple in-memory session store for testing
type memStore struct {
	sess session.Session
}

func (m *memStore) Save(token string, user *session.User) error {
	m.sess = session.Session{Token: token, User: user}
	return nil
}

func (m *memStore) Clear() error {
	m.sess = session.Session{}
	return nil
}

func (m *memStore) Current() session.Session {
	return m.sess
}

// newTestClient wires a client and store against a mock API server.
func newTestClient(t *testing.T, store *memStore, handler http.HandlerFunc) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return client.New(server.URL, store)
}

func memberSession() session.Session {
	return session.Session{
		Token: "tok",
		User: &session.User{
			ID:    1,
			Name:  "Ana Lima",
			Email: "ana@example.com",
			Roles: []session.Role{session.RoleUser},
		},
	}
}

func adminSession() session.Session {
	return session.Session{
		Token: "tok",
		User: &session.User{
			ID:    2,
			Name:  "Root",
			Email: "root@example.com",
			Roles: []session.Role{session.RoleUser, session.RoleAdmin},
		},
	}
}
