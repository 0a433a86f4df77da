// Package catalog provides the TMDB API client used for movie discovery.
//
// It authenticates requests with the api_key query parameter and exposes the
// genre list, popularity-sorted discover pages with optional year and genre
// filters, movie details, and poster downloads. Each call is a single round
// trip with no retries or caching. Failures are classified as ErrTransport
// (network, timeout, non-2xx status) or ErrMalformedResponse (payloads that
// are not JSON or lack a required field) so callers can branch with errors.Is.
// Required fields are never defaulted.
package catalog
