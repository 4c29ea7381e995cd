package commands

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestWhoami_ShowsCachedSnapshot(t *testing.T) {
	store := &memStore{sess: memberSession()}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached snapshot must not trigger a request")
	})

	var output bytes.Buffer
	if err := runWhoami(context.Background(), store, apiClient, &output, false); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "ana@example.com") || !strings.Contains(got, "ROLE_USER") {
		t.Errorf("expected cached profile in output, got: %s", got)
	}
}

func TestWhoami_RequiresLogin(t *testing.T) {
	store := &memStore{}
	apiClient := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {})

	err := runWhoami(context.Background(), store, apiClient, &bytes.Buffer{}, false)
	if err == nil || !strings.Contains(err.Error(), "not authenticated") {
		t.Errorf("expected authentication error, got: %v", err)
	}
}

func TestTokenExpiry_OpaqueTokenHasNone(t *testing.T) {
	if !tokenExpiry("not-a-jwt").IsZero() {
		t.Error("expected zero expiry for an opaque token")
	}
}

func TestTokenExpiry_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana@example.com",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	got := tokenExpiry(signed)
	if !got.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, got)
	}
}
