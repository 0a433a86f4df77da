package roulette_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"movieroulette/internal/catalog"
	"movieroulette/internal/details"
	"movieroulette/internal/discovery"
	"movieroulette/internal/genres"
	"movieroulette/internal/roulette"
	"movieroulette/internal/seen"
	"movieroulette/internal/testsupport"
)

func newSession(t *testing.T, fake *testsupport.FakeCatalog) (*roulette.Session, *seen.Store) {
	t.Helper()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	directory := genres.NewDirectory(fake, nil)
	engine := discovery.New(fake, store, directory, nil)
	resolver := details.NewResolver(fake, nil)
	return roulette.New(engine, resolver, directory, store, nil), store
}

func sampleCatalog() *testsupport.FakeCatalog {
	return &testsupport.FakeCatalog{
		Genres:     map[string]int{"Action": 28, "Comedy": 35},
		Pages:      map[int][]string{1: {"1", "2"}},
		TotalPages: 1,
		Details: map[string]*catalog.Detail{
			"1": {ID: "1", Title: "First", Overview: "one", Genres: []string{"Action"}, IMDbID: "tt1"},
			"2": {ID: "2", Title: "Second", Overview: "two", Genres: []string{"Comedy"}},
		},
	}
}

func TestSuggestCommitCycle(t *testing.T) {
	fake := sampleCatalog()
	session, _ := newSession(t, fake)
	ctx := context.Background()

	movie, err := session.Suggest(ctx, discovery.Filter{})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if movie.ID != "1" || movie.Title != "First" {
		t.Fatalf("expected First, got %+v", movie.Detail)
	}
	if err := session.Commit(ctx, movie); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	next, err := session.Suggest(ctx, discovery.Filter{})
	if err != nil {
		t.Fatalf("second Suggest: %v", err)
	}
	if next.ID != "2" {
		t.Fatalf("expected 2 after committing 1, got %s", next.ID)
	}
	if err := session.Commit(ctx, next); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	_, err = session.Suggest(ctx, discovery.Filter{})
	if !errors.Is(err, discovery.ErrNoQualifyingMovie) {
		t.Fatalf("expected ErrNoQualifyingMovie, got %v", err)
	}

	records, err := session.Seen(ctx)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if len(records) != 2 || records[0].Title != "First" || records[1].Title != "Second" {
		t.Fatalf("unexpected seen list %+v", records)
	}

	removed, err := session.Reset(ctx)
	if err != nil || removed != 2 {
		t.Fatalf("Reset: removed=%d err=%v", removed, err)
	}
	if movie, err := session.Suggest(ctx, discovery.Filter{}); err != nil || movie.ID != "1" {
		t.Fatalf("expected 1 after reset, got %v (err=%v)", movie, err)
	}
}

func TestSuggestLoadsGenresForGenreFilter(t *testing.T) {
	fake := sampleCatalog()
	session, _ := newSession(t, fake)
	genre := "comedy"

	if _, err := session.Suggest(context.Background(), discovery.Filter{Genre: &genre}); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if fake.GenreCalls() != 1 {
		t.Fatalf("expected genre list fetched once, got %d", fake.GenreCalls())
	}
	got := fake.PageQueries()[0].GenreID
	if got == nil || *got != 35 {
		t.Fatalf("expected genre id 35, got %v", got)
	}
}

func TestSuggestRejectsInvalidFilters(t *testing.T) {
	session, _ := newSession(t, sampleCatalog())
	zero, blank := 0, "  "

	tests := []struct {
		name   string
		filter discovery.Filter
		want   error
	}{
		{name: "zero year", filter: discovery.Filter{Year: &zero}, want: roulette.ErrInvalidYear},
		{name: "blank genre", filter: discovery.Filter{Genre: &blank}, want: roulette.ErrNoGenre},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Suggest(context.Background(), tt.filter)
			if !errors.Is(err, tt.want) || !errors.Is(err, roulette.ErrInvalidFilter) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGenresSortedAndCached(t *testing.T) {
	fake := sampleCatalog()
	session, _ := newSession(t, fake)

	for i := 0; i < 2; i++ {
		names, err := session.Genres(context.Background())
		if err != nil {
			t.Fatalf("Genres: %v", err)
		}
		if len(names) != 2 || names[0] != "Action" || names[1] != "Comedy" {
			t.Fatalf("unexpected names %v", names)
		}
	}
	if fake.GenreCalls() != 1 {
		t.Fatalf("expected one fetch, got %d", fake.GenreCalls())
	}
}

func TestForget(t *testing.T) {
	session, store := newSession(t, sampleCatalog())
	ctx := context.Background()
	testsupport.MustAddSeen(t, store, "1", "First")

	if err := session.Forget(ctx, "1"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := session.Forget(ctx, "1"); !errors.Is(err, seen.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShowUnknownMovie(t *testing.T) {
	session, _ := newSession(t, sampleCatalog())

	_, err := session.Show(context.Background(), "999")
	if got := roulette.Describe(err); got != "the movie catalog has no such movie" {
		t.Fatalf("unexpected description %q for %v", got, err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: fmt.Errorf("wrap: %w", discovery.ErrNoQualifyingMovie), want: "no movie matches these filters that you haven't seen"},
		{err: fmt.Errorf("%w: %w", discovery.ErrRequestFailed, catalog.ErrTransport), want: "network error"},
		{err: fmt.Errorf("%w: %w", discovery.ErrRequestFailed, catalog.ErrMalformedResponse), want: "the movie catalog sent an unexpected response"},
		{err: fmt.Errorf("%w: %w", catalog.ErrTransport, context.Canceled), want: "search cancelled"},
		{err: context.DeadlineExceeded, want: "network error"},
		{err: roulette.ErrInvalidYear, want: "invalid year value"},
		{err: roulette.ErrNoGenre, want: "no genre selected"},
		{err: &catalog.StatusError{Endpoint: "discover", StatusCode: 401}, want: "the movie catalog rejected the API key"},
		{err: &catalog.StatusError{Endpoint: "discover", StatusCode: 503}, want: "network error"},
		{err: errors.New("boom"), want: "boom"},
	}
	for _, tt := range tests {
		if got := roulette.Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
