package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory session store for tests.
type memStore struct {
	sess   session.Session
	clears int
}

func (m *memStore) Save(token string, user *session.User) error {
	m.sess = session.Session{Token: token, User: user}
	return nil
}

func (m *memStore) Clear() error {
	m.sess = session.Session{}
	m.clears++
	return nil
}

func (m *memStore) Current() session.Session {
	return m.sess
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := &memStore{sess: session.Session{Token: "tok-123"}}
	c := New(server.URL, store)

	_, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestClient_OmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})

	_, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClient_UnauthorizedClearsSessionOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/posts/42", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expirado"}`))
	}))
	defer server.Close()

	store := &memStore{sess: session.Session{Token: "stale", User: &session.User{ID: 7}}}
	c := New(server.URL, store)

	_, err := c.GetPost(context.Background(), 42)
	require.Error(t, err)
	require.True(t, IsKind(err, KindUnauthorized))
	require.True(t, store.Current().Empty())
	require.Equal(t, 1, store.clears)
}

func TestClient_UnauthenticatedRequestDoesNotClearSession(t *testing.T) {
	// A 401 on a request that carried no credential has nothing to
	// invalidate.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "credenciais inválidas"}`))
	}))
	defer server.Close()

	store := &memStore{}
	c := New(server.URL, store)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.True(t, IsKind(err, KindUnauthorized))
	require.Equal(t, 0, store.clears)
}

func TestClient_LoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.com", req.Email)
		require.Equal(t, "x", req.Password)

		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "T1",
			"user":        map[string]any{"id": 1, "roles": []string{}},
		})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})

	resp, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, "T1", resp.AccessToken)
	require.NotNil(t, resp.User)
	require.Equal(t, int64(1), resp.User.ID)
	require.False(t, resp.User.IsAdmin())
}

func TestClient_LoginUnverifiedEmailIsDistinctKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Email não verificado. Verifique sua caixa de entrada."}`))
	}))
	defer server.Close()

	store := &memStore{}
	c := New(server.URL, store)

	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.True(t, IsKind(err, KindEmailNotVerified))
	require.False(t, IsKind(err, KindUnauthorized))
	require.Equal(t, 0, store.clears)
}

func TestClient_DevelopersPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/feed/developers", r.URL.Path)
		require.Equal(t, "0", r.URL.Query().Get("page"))
		require.Equal(t, "9", r.URL.Query().Get("size"))

		content := make([]map[string]any, 9)
		for i := range content {
			content[i] = map[string]any{"id": i + 1, "name": "dev"}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":    content,
			"totalPages": 3,
			"number":     0,
			"size":       9,
		})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{sess: session.Session{Token: "tok"}})

	page, err := c.Developers(context.Background(), DeveloperQuery{Page: 0, Size: 9})
	require.NoError(t, err)
	require.Len(t, page.Content, 9)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 0, page.Number)
}

func TestClient_DevelopersFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "go", r.URL.Query().Get("search"))
		require.Equal(t, "SENIOR", r.URL.Query().Get("experienceLevel"))
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}, "totalPages": 0})
	}))
	defer server.Close()

	c := New(server.URL, &memStore{sess: session.Session{Token: "tok"}})

	_, err := c.Developers(context.Background(), DeveloperQuery{Size: 9, Search: "go", ExperienceLevel: "SENIOR"})
	require.NoError(t, err)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := &memStore{sess: session.Session{Token: "tok"}}
	c := New(server.URL, store)

	_, err := c.GetPost(context.Background(), 999)
	require.True(t, IsKind(err, KindNotFound))
	// Only 401 may touch the session.
	require.Equal(t, 0, store.clears)
	require.False(t, store.Current().Empty())
}

func TestClient_ForbiddenLeavesSessionIntact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "acesso negado"}`))
	}))
	defer server.Close()

	store := &memStore{sess: session.Session{Token: "tok"}}
	c := New(server.URL, store)

	_, err := c.AdminListUsers(context.Background())
	require.True(t, IsKind(err, KindForbidden))
	require.Equal(t, 0, store.clears)
}

func TestClient_ValidationMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "nome é obrigatório"}`))
	}))
	defer server.Close()

	c := New(server.URL, &memStore{sess: session.Session{Token: "tok"}})

	_, err := c.CreateGroup(context.Background(), GroupRequest{})
	require.True(t, IsKind(err, KindValidation))
	require.Contains(t, err.Error(), "nome é obrigatório")
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	store := &memStore{sess: session.Session{Token: "tok"}}
	c := New(server.URL, store)

	_, err := c.ListPosts(context.Background())
	require.True(t, IsKind(err, KindNetwork))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Zero(t, apiErr.Status)
	// No response received, so the session must not be invalidated.
	require.Equal(t, 0, store.clears)
}

func TestClient_ResendVerificationThrottled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"nextResendDelay": 120}`))
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})

	result, err := c.ResendVerification(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, 120, result.NextResendDelay)
	require.False(t, result.Blocked)
}

func TestClient_ResendVerificationBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"blocked": true, "message": "Conta bloqueada por excesso de tentativas"}`))
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})

	result, err := c.ResendVerification(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, result.Blocked)
	require.Contains(t, result.Message, "bloqueada")
}

func TestClient_VerifyEmailReturnsPlainMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/verify-email", r.URL.Path)
		w.Write([]byte("Email verificado com sucesso"))
	}))
	defer server.Close()

	c := New(server.URL, &memStore{})

	msg, err := c.VerifyEmail(context.Background(), "verify-token")
	require.NoError(t, err)
	require.Equal(t, "Email verificado com sucesso", msg)
}
