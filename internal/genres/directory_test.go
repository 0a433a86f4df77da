package genres_test

import (
	"context"
	"errors"
	"testing"

	"movieroulette/internal/genres"
)

type stubLister struct {
	genres map[string]int
	err    error
	calls  int
}

func (s *stubLister) FetchGenreList(context.Context) (map[string]int, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.genres, nil
}

func TestResolveBeforeRefreshIsAbsentAndDoesNotFetch(t *testing.T) {
	lister := &stubLister{genres: map[string]int{"Action": 28}}
	dir := genres.NewDirectory(lister, nil)

	if _, ok := dir.Resolve("Action"); ok {
		t.Fatal("expected unpopulated directory to resolve nothing")
	}
	if lister.calls != 0 {
		t.Fatalf("Resolve must not fetch, got %d calls", lister.calls)
	}
	if dir.Populated() {
		t.Fatal("expected directory to be unpopulated")
	}
}

func TestResolveAfterRefresh(t *testing.T) {
	lister := &stubLister{genres: map[string]int{"Action": 28, "Science Fiction": 878}}
	dir := genres.NewDirectory(lister, nil)
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	cases := []struct {
		name   string
		wantID int
		wantOK bool
	}{
		{"Action", 28, true},
		{"science fiction", 878, true},
		{"  SCIENCE FICTION ", 878, true},
		{"Western", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, ok := dir.Resolve(tc.name)
		if ok != tc.wantOK || id != tc.wantID {
			t.Fatalf("Resolve(%q) = (%d, %v), want (%d, %v)", tc.name, id, ok, tc.wantID, tc.wantOK)
		}
	}

	names := dir.Names()
	if len(names) != 2 || names[0] != "Action" || names[1] != "Science Fiction" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	lister := &stubLister{genres: map[string]int{"Drama": 18}}
	dir := genres.NewDirectory(lister, nil)
	for i := 0; i < 3; i++ {
		if err := dir.EnsureLoaded(context.Background()); err != nil {
			t.Fatalf("EnsureLoaded returned error: %v", err)
		}
	}
	if lister.calls != 1 {
		t.Fatalf("expected a single fetch per session, got %d", lister.calls)
	}
}

func TestRefreshFailureKeepsPreviousMapping(t *testing.T) {
	lister := &stubLister{genres: map[string]int{"Horror": 27}}
	dir := genres.NewDirectory(lister, nil)
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	boom := errors.New("network down")
	lister.err = boom
	if err := dir.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected refresh error, got %v", err)
	}
	if id, ok := dir.Resolve("Horror"); !ok || id != 27 {
		t.Fatalf("expected previous mapping retained, got (%d, %v)", id, ok)
	}
}
