package details_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"movieroulette/internal/catalog"
	"movieroulette/internal/details"
	"movieroulette/internal/testsupport"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func matrixDetail() *catalog.Detail {
	return &catalog.Detail{
		ID:         "603",
		Title:      "The Matrix",
		Overview:   "A hacker learns the truth.",
		Genres:     []string{"Action", "Science Fiction"},
		PosterPath: "/matrix.jpg",
		IMDbID:     "tt0133093",
	}
}

func TestResolveWithPoster(t *testing.T) {
	fake := &testsupport.FakeCatalog{
		Details: map[string]*catalog.Detail{"603": matrixDetail()},
		Posters: map[string]*catalog.Poster{
			"/matrix.jpg": {URL: "https://img/matrix.jpg", Data: pngBytes(t, 4, 6)},
		},
	}
	resolver := details.NewResolver(fake, nil)

	movie, err := resolver.Resolve(context.Background(), "603")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if movie.Title != "The Matrix" || len(movie.Genres) != 2 || movie.Genres[1] != "Science Fiction" {
		t.Fatalf("unexpected detail: %+v", movie.Detail)
	}
	if movie.CrossReferenceURL != "https://m.imdb.com/title/tt0133093" {
		t.Fatalf("unexpected cross reference url %q", movie.CrossReferenceURL)
	}
	if movie.Poster == nil {
		t.Fatal("expected poster")
	}
	if movie.Poster.Width != 4 || movie.Poster.Height != 6 {
		t.Fatalf("unexpected poster size %dx%d", movie.Poster.Width, movie.Poster.Height)
	}
	if movie.Poster.ContentType != "image/png" {
		t.Fatalf("expected sniffed content type, got %q", movie.Poster.ContentType)
	}
}

func TestResolvePosterFailureDegrades(t *testing.T) {
	tests := []struct {
		name string
		fake *testsupport.FakeCatalog
	}{
		{
			name: "fetch error",
			fake: &testsupport.FakeCatalog{
				Details:   map[string]*catalog.Detail{"603": matrixDetail()},
				PosterErr: catalog.ErrTransport,
			},
		},
		{
			name: "undecodable bytes",
			fake: &testsupport.FakeCatalog{
				Details: map[string]*catalog.Detail{"603": matrixDetail()},
				Posters: map[string]*catalog.Poster{"/matrix.jpg": {Data: []byte("not an image")}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movie, err := details.NewResolver(tt.fake, nil).Resolve(context.Background(), "603")
			if err != nil {
				t.Fatalf("expected poster failure to be non-fatal, got %v", err)
			}
			if movie.Poster != nil {
				t.Fatal("expected nil poster")
			}
			if movie.Title != "The Matrix" {
				t.Fatalf("expected detail kept, got %q", movie.Title)
			}
		})
	}
}

func TestResolveWithoutPosterPath(t *testing.T) {
	detail := matrixDetail()
	detail.PosterPath = ""
	detail.IMDbID = ""
	fake := &testsupport.FakeCatalog{
		Details:   map[string]*catalog.Detail{"603": detail},
		PosterErr: errors.New("must not be called"),
	}

	movie, err := details.NewResolver(fake, nil).Resolve(context.Background(), "603")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if movie.Poster != nil {
		t.Fatal("expected nil poster")
	}
	if movie.CrossReferenceURL != "" {
		t.Fatalf("expected empty cross reference, got %q", movie.CrossReferenceURL)
	}
}

func TestResolveDetailErrorPropagates(t *testing.T) {
	fake := &testsupport.FakeCatalog{DetailErr: catalog.ErrMalformedResponse}

	movie, err := details.NewResolver(fake, nil).Resolve(context.Background(), "603")
	if !errors.Is(err, catalog.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if movie != nil {
		t.Fatal("expected no partial movie")
	}
}

func TestCrossReferenceBaseOverride(t *testing.T) {
	resolver := details.NewResolver(nil, nil, details.WithCrossReferenceBaseURL("https://www.imdb.com/title/"))
	if got := resolver.CrossReferenceURL("tt1"); got != "https://www.imdb.com/title/tt1" {
		t.Fatalf("unexpected url %q", got)
	}
}
