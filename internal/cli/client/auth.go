package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devexp-dev/devexp/internal/cli/session"
)

// Marker the API puts in a login 401 when the account exists but its
// email has not been verified yet.
const emailNotVerifiedMarker = "email não verificado"

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token. The profile snapshot may be
// absent, in which case the caller fetches it from /api/users/me.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *session.User `json:"user"`
}

// Login exchanges credentials for a bearer token. An unverified account
// is reported as KindEmailNotVerified instead of a plain 401.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			apiErr.Status == http.StatusUnauthorized &&
			strings.Contains(strings.ToLower(apiErr.Message), emailNotVerifiedMarker) {
			apiErr.Kind = KindEmailNotVerified
		}
		return nil, err
	}
	return &resp, nil
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	GitHub          string `json:"github,omitempty"`
	ExperienceLevel string `json:"experienceLevel" validate:"required,oneof=JUNIOR PLENO SENIOR"`
}

// Register creates an account. The account stays unusable until the
// emailed verification token is confirmed.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// VerifyEmail confirms an emailed verification token and returns the
// API's confirmation message.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	var message string
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-email", map[string]string{"token": token}, &message)
	if err != nil {
		return "", err
	}
	return message, nil
}

// ResendResult is the outcome of a resend-verification call. The API
// throttles resends: NextResendDelay is the wait in seconds before the
// next attempt, Blocked means the account was locked for abuse.
type ResendResult struct {
	Message         string `json:"message"`
	NextResendDelay int    `json:"nextResendDelay"`
	Blocked         bool   `json:"blocked"`
}

// ResendVerification asks for a fresh verification email. Throttling
// responses are returned as a ResendResult, not an error; only
// transport and unexpected failures are errors.
func (c *Client) ResendVerification(ctx context.Context, email string) (*ResendResult, error) {
	var result ResendResult
	err := c.do(ctx, http.MethodPost, "/api/auth/resend-verification", map[string]string{"email": email}, &result)
	if err == nil {
		return &result, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Body) > 0 {
		var throttled ResendResult
		if jsonErr := json.Unmarshal(apiErr.Body, &throttled); jsonErr == nil &&
			(throttled.Blocked || throttled.NextResendDelay > 0) {
			if throttled.Message == "" {
				throttled.Message = apiErr.Message
			}
			return &throttled, nil
		}
	}

	return nil, err
}
