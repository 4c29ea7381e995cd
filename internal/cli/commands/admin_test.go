package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestAdminUsersList_RequiresLogin(t *testing.T) {
	store := &memStore{}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an anonymous requester")
	})

	err := runAdminUsersList(context.Background(), store, apiClient, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "not authenticated") {
		t.Errorf("expected authentication error, got: %v", err)
	}
}

func TestAdminUsersList_RefusesNonAdmin(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a non-admin requester")
	})

	err := runAdminUsersList(context.Background(), store, apiClient, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "admin access required") {
		t.Errorf("expected admin access error, got: %v", err)
	}
}

func TestAdminUsersList_ShowsAccounts(t *testing.T) {
	store := &memStore{sess: adminSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/users" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Ana Lima", "email": "ana@example.com", "experienceLevel": "PLENO", "roles": []string{"ROLE_USER"}},
			{"id": 2, "name": "Root", "email": "root@example.com", "roles": []string{"ROLE_USER", "ROLE_ADMIN"}},
		})
	})

	var output bytes.Buffer
	if err := runAdminUsersList(context.Background(), store, apiClient, &output); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	for _, want := range []string{"ana@example.com", "root@example.com", "ROLE_ADMIN"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got: %s", want, got)
		}
	}
}

func TestAdminUsersDelete_NotFound(t *testing.T) {
	store := &memStore{sess: adminSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := runAdminUsersDelete(context.Background(), store, apiClient, &bytes.Buffer{}, 99)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got: %v", err)
	}
}
