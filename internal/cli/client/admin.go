package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// AdminListUsers returns every registered user. Requires the admin role
// server-side; the CLI additionally guards the command locally.
func (c *Client) AdminListUsers(ctx context.Context) ([]session.User, error) {
	var users []session.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminUserUpdate carries the fields an administrator may change on any
// account, including the role set.
type AdminUserUpdate struct {
	Name            string         `json:"name,omitempty"`
	Email           string         `json:"email,omitempty"`
	ExperienceLevel string         `json:"experienceLevel,omitempty"`
	Roles           []session.Role `json:"roles,omitempty"`
}

// AdminUpdateUser edits any user account.
func (c *Client) AdminUpdateUser(ctx context.Context, id int64, update AdminUserUpdate) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, nil)
}
