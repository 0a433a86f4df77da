package roulette

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"movieroulette/internal/catalog"
	"movieroulette/internal/discovery"
	"movieroulette/internal/seen"
)

var (
	// ErrInvalidFilter marks filters rejected before any search starts.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidYear reports a year that is not a positive number.
	ErrInvalidYear = fmt.Errorf("%w: invalid year value", ErrInvalidFilter)
	// ErrNoGenre reports a genre filter with an empty name.
	ErrNoGenre = fmt.Errorf("%w: no genre selected", ErrInvalidFilter)
)

// ValidateFilter rejects a non-positive year or a blank genre name.
func ValidateFilter(filter discovery.Filter) error {
	if filter.Year != nil && *filter.Year <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, *filter.Year)
	}
	if filter.Genre != nil && strings.TrimSpace(*filter.Genre) == "" {
		return ErrNoGenre
	}
	return nil
}

// Describe converts an operation error into a short message for the user.
func Describe(err error) string {
	var statusErr *catalog.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "search cancelled"
	case errors.Is(err, ErrInvalidYear):
		return "invalid year value"
	case errors.Is(err, ErrNoGenre):
		return "no genre selected"
	case errors.Is(err, discovery.ErrNoQualifyingMovie):
		return "no movie matches these filters that you haven't seen"
	case errors.Is(err, seen.ErrNotFound):
		return "that movie is not in your seen list"
	case errors.Is(err, seen.ErrInvalidID):
		return "a movie id is required"
	case errors.Is(err, discovery.ErrExclusionCheck):
		return "could not read your seen list"
	case errors.Is(err, catalog.ErrMalformedResponse):
		return "the movie catalog sent an unexpected response"
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		return "the movie catalog has no such movie"
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized:
		return "the movie catalog rejected the API key"
	case errors.Is(err, catalog.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return "network error"
	default:
		return err.Error()
	}
}
