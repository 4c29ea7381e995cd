package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/devexp-dev/devexp/internal/cli/client"
)

func TestProfileUpdate_RefreshesStoredSnapshot(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/1" || r.Method != http.MethodPut {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    1,
			"name":  "Ana L.",
			"email": "ana@example.com",
			"bio":   "gopher",
			"roles": []string{"ROLE_USER"},
		})
	})

	err := runProfileUpdate(context.Background(), store, apiClient, &bytes.Buffer{}, client.UserUpdate{Name: "Ana L.", Bio: "gopher"})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	sess := store.Current()
	if sess.Token != "tok" {
		t.Errorf("token must survive a profile edit, got %q", sess.Token)
	}
	if sess.User == nil || sess.User.Name != "Ana L." || sess.User.Bio != "gopher" {
		t.Errorf("expected refreshed snapshot, got %+v", sess.User)
	}
}

func TestProfileUpdate_RejectsEmptyUpdate(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty update")
	})

	err := runProfileUpdate(context.Background(), store, apiClient, &bytes.Buffer{}, client.UserUpdate{})
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("expected empty-update error, got: %v", err)
	}
}

func TestProfileShow_OtherUser(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/5" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":              5,
			"name":            "Beto",
			"email":           "beto@example.com",
			"experienceLevel": "SENIOR",
			"github":          "beto",
		})
	})

	var output bytes.Buffer
	if err := runProfileShow(context.Background(), store, apiClient, &output, 5); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "Beto") || !strings.Contains(got, "github.com/beto") {
		t.Errorf("expected profile details, got: %s", got)
	}
}

func TestProfileShow_NotFound(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := runProfileShow(context.Background(), store, apiClient, &bytes.Buffer{}, 123)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got: %v", err)
	}
}
