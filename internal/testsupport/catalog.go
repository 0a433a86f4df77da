package testsupport

import (
	"context"
	"fmt"
	"sync"

	"movieroulette/internal/catalog"
)

// FakeCatalog is an in-memory catalog.Catalog. Pages are served from Pages
// keyed by page number; every request is recorded for assertions.
type FakeCatalog struct {
	Genres     map[string]int
	Pages      map[int][]string
	TotalPages int
	Details    map[string]*catalog.Detail
	Posters    map[string]*catalog.Poster

	GenreErr  error
	PageErr   error
	DetailErr error
	PosterErr error

	mu          sync.Mutex
	pageQueries []catalog.DiscoverQuery
	pageNumbers []int
	genreCalls  int
}

var _ catalog.Catalog = (*FakeCatalog)(nil)

// FetchGenreList returns Genres or GenreErr.
func (f *FakeCatalog) FetchGenreList(ctx context.Context) (map[string]int, error) {
	f.mu.Lock()
	f.genreCalls++
	f.mu.Unlock()
	if f.GenreErr != nil {
		return nil, f.GenreErr
	}
	out := make(map[string]int, len(f.Genres))
	for name, id := range f.Genres {
		out[name] = id
	}
	return out, nil
}

// FetchPage returns the configured ids for page in catalog order.
func (f *FakeCatalog) FetchPage(ctx context.Context, query catalog.DiscoverQuery, page int) (*catalog.Page, error) {
	f.mu.Lock()
	f.pageQueries = append(f.pageQueries, query)
	f.pageNumbers = append(f.pageNumbers, page)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.PageErr != nil {
		return nil, f.PageErr
	}
	total := f.TotalPages
	if total == 0 {
		total = len(f.Pages)
	}
	result := &catalog.Page{Number: page, TotalPages: total}
	for i, id := range f.Pages[page] {
		result.Results = append(result.Results, catalog.MovieSummary{ID: id, Rank: i + 1})
	}
	return result, nil
}

// FetchDetail returns the configured detail or a 404 status error.
func (f *FakeCatalog) FetchDetail(ctx context.Context, id string) (*catalog.Detail, error) {
	if f.DetailErr != nil {
		return nil, f.DetailErr
	}
	detail, ok := f.Details[id]
	if !ok {
		return nil, &catalog.StatusError{Endpoint: "movie details", StatusCode: 404}
	}
	clone := *detail
	clone.Genres = append([]string(nil), detail.Genres...)
	return &clone, nil
}

// FetchPoster returns the configured poster for path.
func (f *FakeCatalog) FetchPoster(ctx context.Context, posterPath string) (*catalog.Poster, error) {
	if f.PosterErr != nil {
		return nil, f.PosterErr
	}
	poster, ok := f.Posters[posterPath]
	if !ok {
		return nil, fmt.Errorf("poster %s: %w", posterPath, &catalog.StatusError{Endpoint: "poster", StatusCode: 404})
	}
	return poster, nil
}

// PageRequests returns the page numbers requested so far, in order.
func (f *FakeCatalog) PageRequests() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pageNumbers...)
}

// PageQueries returns the discover queries received so far, in order.
func (f *FakeCatalog) PageQueries() []catalog.DiscoverQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.DiscoverQuery(nil), f.pageQueries...)
}

// GenreCalls returns how many times the genre list was fetched.
func (f *FakeCatalog) GenreCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.genreCalls
}

// MemorySeen is an in-memory exclusion set for engine tests.
type MemorySeen struct {
	mu     sync.Mutex
	ids    map[string]string
	checks []string
	Err    error
}

// NewMemorySeen creates an exclusion set containing ids.
func NewMemorySeen(ids ...string) *MemorySeen {
	m := &MemorySeen{ids: make(map[string]string, len(ids))}
	for _, id := range ids {
		m.ids[id] = ""
	}
	return m
}

// Exists reports membership and records the check order.
func (m *MemorySeen) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks = append(m.checks, id)
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.ids[id]
	return ok, nil
}

// Checks returns every id passed to Exists, in order.
func (m *MemorySeen) Checks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.checks...)
}
