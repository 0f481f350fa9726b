package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

const genericFailure = "Request failed"

// ErrUnauthenticated is returned before any network call when an
// authenticated endpoint is used without a session token.
var ErrUnauthenticated = errors.New("Please sign in")

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// FriendlyMessage turns err into the text shown to a user. fallback is used
// when nothing more specific is known.
func FriendlyMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnauthenticated) || IsStatus(err, http.StatusUnauthorized) {
		return "Please sign in"
	}

	var ferr *FormError
	if errors.As(err, &ferr) {
		return ferr.Message
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusRequestEntityTooLarge || strings.Contains(strings.ToLower(apiErr.Message), "too large"):
			return "The file is too large. Images may be up to 10MB and videos up to 50MB."
		case strings.HasPrefix(apiErr.Message, "Invalid file type"):
			return "This file type is not supported. Use JPEG or PNG images, or MP4 or WebM videos."
		case apiErr.Message != "" && apiErr.Message != genericFailure:
			return apiErr.Message
		}
		return fallback
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "The server took too long to respond. Please try again."
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "Failed to connect to the server. Please try again later."
	}
	return fallback
}
