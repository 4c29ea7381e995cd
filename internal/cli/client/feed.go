package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// DeveloperQuery filters the developer directory. Page is zero-based.
type DeveloperQuery struct {
	Page            int
	Size            int
	Search          string
	ExperienceLevel string
}

// Developers returns one page of the developer directory.
func (c *Client) Developers(ctx context.Context, q DeveloperQuery) (*Page[session.User], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.ExperienceLevel != "" {
		params.Set("experienceLevel", q.ExperienceLevel)
	}

	var page Page[session.User]
	if err := c.do(ctx, http.MethodGet, "/api/feed/developers?"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Trending returns the currently trending developers.
func (c *Client) Trending(ctx context.Context) ([]session.User, error) {
	var users []session.User
	if err := c.do(ctx, http.MethodGet, "/api/feed/trending", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
