// Package details assembles everything needed to display one movie: the
// catalog record, its poster image and the IMDb cross-reference link.
package details

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"movieroulette/internal/catalog"
	"movieroulette/internal/logging"
)

// DefaultCrossReferenceBaseURL prefixes IMDb ids to form a mobile IMDb link.
const DefaultCrossReferenceBaseURL = "https://m.imdb.com/title/"

// Source fetches movie records and poster images.
type Source interface {
	FetchDetail(ctx context.Context, id string) (*catalog.Detail, error)
	FetchPoster(ctx context.Context, posterPath string) (*catalog.Poster, error)
}

// Poster is a decoded-and-validated poster image.
type Poster struct {
	URL         string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Movie is a catalog record ready for display.
type Movie struct {
	catalog.Detail
	// Poster is nil when the movie has no poster or it could not be loaded.
	Poster            *Poster
	CrossReferenceURL string
}

// Resolver loads movie records for display.
type Resolver struct {
	source       Source
	logger       *slog.Logger
	crossRefBase string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCrossReferenceBaseURL overrides the prefix used to build IMDb links.
func WithCrossReferenceBaseURL(base string) Option {
	return func(r *Resolver) {
		if base = strings.TrimSpace(base); base != "" {
			r.crossRefBase = base
		}
	}
}

// NewResolver constructs a resolver over source.
func NewResolver(source Source, logger *slog.Logger, opts ...Option) *Resolver {
	resolver := &Resolver{
		source:       source,
		logger:       logging.NewComponentLogger(logger, "details"),
		crossRefBase: DefaultCrossReferenceBaseURL,
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// Resolve fetches the record for id and, when it names one, its poster. A
// poster that cannot be fetched or decoded is logged and left nil; detail
// failures are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, id string) (*Movie, error) {
	detail, err := r.source.FetchDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve movie %s: %w", id, err)
	}
	movie := &Movie{
		Detail:            *detail,
		CrossReferenceURL: r.CrossReferenceURL(detail.IMDbID),
	}
	if strings.TrimSpace(detail.PosterPath) == "" {
		return movie, nil
	}

	poster, err := r.loadPoster(ctx, detail.PosterPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.WarnWithContext(ctx, r.logger, "poster unavailable; showing details without image", "poster_unavailable",
			logging.String("movie_id", detail.ID),
			logging.String("poster_path", detail.PosterPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access to the image host"),
			logging.String(logging.FieldImpact, "movie is displayed without a poster"),
		)
		return movie, nil
	}
	movie.Poster = poster
	return movie, nil
}

// CrossReferenceURL returns the IMDb link for imdbID, or "" when unknown.
func (r *Resolver) CrossReferenceURL(imdbID string) string {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return ""
	}
	return r.crossRefBase + imdbID
}

var errUndecodablePoster = errors.New("poster is not a decodable image")

func (r *Resolver) loadPoster(ctx context.Context, path string) (*Poster, error) {
	raw, err := r.source.FetchPoster(ctx, path)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUndecodablePoster, err)
	}
	contentType := strings.TrimSpace(raw.ContentType)
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/" + format
	}
	return &Poster{
		URL:         raw.URL,
		ContentType: contentType,
		Data:        raw.Data,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
