package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// Group is a developer group.
type Group struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       session.User   `json:"owner"`
	Members     []session.User `json:"members"`
}

// GroupRequest is the create/update form.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListGroups returns all groups.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group owned by the requester.
func (c *Client) CreateGroup(ctx context.Context, req GroupRequest) (*Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodPost, "/api/groups", req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup edits a group's name or description.
func (c *Client) UpdateGroup(ctx context.Context, id int64, req GroupRequest) (*Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/groups/%d", id), req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a group.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/groups/%d", id), nil, nil)
}

// AddGroupMember adds a user to a group.
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID int64) error {
	body := map[string]int64{"userId": userID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/groups/%d/members", groupID), body, nil)
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/groups/%d/members/%d", groupID, userID), nil, nil)
}
