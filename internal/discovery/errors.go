package discovery

import "errors"

var (
	// ErrRequestFailed wraps a catalog error that ended the search. The
	// underlying catalog.ErrTransport or catalog.ErrMalformedResponse still
	// matches under errors.Is.
	ErrRequestFailed = errors.New("discovery request failed")
	// ErrNoQualifyingMovie reports that every page was exhausted without
	// finding a movie outside the exclusion set.
	ErrNoQualifyingMovie = errors.New("no qualifying movie")
	// ErrExclusionCheck wraps an exclusion store failure.
	ErrExclusionCheck = errors.New("exclusion check failed")
	// ErrSearchPending is returned by Search.Result before the search ends.
	ErrSearchPending = errors.New("search still running")
)
