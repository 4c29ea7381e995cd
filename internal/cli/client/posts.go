package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// Comment is one comment on a post.
type Comment struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	CreatedAt string       `json:"createdAt"`
	Author    session.User `json:"author"`
}

// Post is a feed entry, optionally carrying a code snippet.
type Post struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	Code      string       `json:"code,omitempty"`
	Language  string       `json:"language,omitempty"`
	CreatedAt string       `json:"createdAt"`
	Author    session.User `json:"author"`
	Likes     int          `json:"likes"`
	Comments  []Comment    `json:"comments"`
}

// ListPosts returns the post feed.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePostRequest is the new-post form.
type CreatePostRequest struct {
	Content  string `json:"content"`
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
}

// CreatePost publishes a post and returns it.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// LikePost toggles the requester's like on a post.
func (c *Client) LikePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", id), nil, nil)
}

// CommentPost adds a comment to a post.
func (c *Client) CommentPost(ctx context.Context, id int64, content string) error {
	body := map[string]string{"content": content}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comment", id), body, nil)
}
