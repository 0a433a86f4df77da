package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Term is a single query-string key/value pair.
type Term struct {
	Key   string
	Value string
}

// Terms is an ordered list of query terms. Unlike url.Values it preserves
// insertion order, and a filter that is absent simply has no term.
type Terms []Term

// With returns a copy of t with key=value appended.
func (t Terms) With(key, value string) Terms {
	out := make(Terms, len(t), len(t)+1)
	copy(out, t)
	return append(out, Term{Key: key, Value: value})
}

// Get returns the value of the first term named key.
func (t Terms) Get(key string) (string, bool) {
	for _, term := range t {
		if term.Key == key {
			return term.Value, true
		}
	}
	return "", false
}

// Has reports whether a term named key is present.
func (t Terms) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Encode renders the terms as a query string in insertion order.
func (t Terms) Encode() string {
	var b strings.Builder
	for i, term := range t {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(term.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(term.Value))
	}
	return b.String()
}

// Query parameter names understood by /discover/movie.
const (
	ParamSortBy       = "sort_by"
	ParamIncludeAdult = "include_adult"
	ParamIncludeVideo = "include_video"
	ParamYear         = "year"
	ParamWithGenres   = "with_genres"
	ParamPage         = "page"
)

// SortPopularityDesc orders discover results by descending popularity.
const SortPopularityDesc = "popularity.desc"

// DiscoverQuery describes a most-popular discover request. Nil fields are
// omitted from the request entirely.
type DiscoverQuery struct {
	Year    *int
	GenreID *int
}

// Terms renders the query without pagination or credentials.
func (q DiscoverQuery) Terms() Terms {
	terms := Terms{
		{Key: ParamSortBy, Value: SortPopularityDesc},
		{Key: ParamIncludeAdult, Value: "false"},
		{Key: ParamIncludeVideo, Value: "false"},
	}
	if q.Year != nil {
		terms = terms.With(ParamYear, strconv.Itoa(*q.Year))
	}
	if q.GenreID != nil {
		terms = terms.With(ParamWithGenres, strconv.Itoa(*q.GenreID))
	}
	return terms
}
