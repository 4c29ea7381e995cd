package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns a user profile by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserUpdate carries the editable profile fields. Zero-valued fields
// are omitted so the API leaves them untouched.
type UserUpdate struct {
	Name            string `json:"name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	GitHub          string `json:"github,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
}

// UpdateUser edits a profile and returns the updated snapshot.
func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
