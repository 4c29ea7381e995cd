package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API failures for the presentation layer.
type ErrorKind int

const (
	// KindUnknown covers non-2xx statuses outside the taxonomy (5xx).
	KindUnknown ErrorKind = iota
	// KindUnauthorized is a 401; the session has already been cleared as
	// a side effect by the time the caller sees it.
	KindUnauthorized
	// KindEmailNotVerified is a login 401 caused by an unverified
	// account. It has no session side effect.
	KindEmailNotVerified
	// KindForbidden is a 403: authenticated but lacking the capability.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindValidation is any other 4xx carrying a message body.
	KindValidation
	// KindNetwork means no response was received at all.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindEmailNotVerified:
		return "email not verified"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError is the failure surfaced by every client method. Status is 0
// when no response was received.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.Status)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
