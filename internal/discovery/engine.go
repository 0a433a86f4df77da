package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"movieroulette/internal/catalog"
	"movieroulette/internal/logging"
)

// MaxCatalogPages is the highest page number the catalog accepts.
const MaxCatalogPages = 500

// Filter narrows a search. A nil field means the filter is not applied.
type Filter struct {
	Year  *int
	Genre *string
}

// String renders the filter for log lines.
func (f Filter) String() string {
	parts := make([]string, 0, 2)
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("year=%d", *f.Year))
	}
	if f.Genre != nil {
		parts = append(parts, fmt.Sprintf("genre=%q", *f.Genre))
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, " ")
}

// PageFetcher requests one page of discover results.
type PageFetcher interface {
	FetchPage(ctx context.Context, query catalog.DiscoverQuery, page int) (*catalog.Page, error)
}

// ExclusionSet answers whether a movie has already been seen.
type ExclusionSet interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// GenreResolver maps a genre display name to its catalog id.
type GenreResolver interface {
	Resolve(name string) (int, bool)
}

// Engine runs popularity-ordered searches against the catalog.
type Engine struct {
	pages      PageFetcher
	exclusions ExclusionSet
	genres     GenreResolver
	logger     *slog.Logger
	maxPages   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPages bounds how many pages a search may walk. Values outside
// 1..MaxCatalogPages are clamped.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		switch {
		case n <= 0:
		case n > MaxCatalogPages:
			e.maxPages = MaxCatalogPages
		default:
			e.maxPages = n
		}
	}
}

// New constructs an engine. genres may be nil, in which case genre filters
// are never applied.
func New(pages PageFetcher, exclusions ExclusionSet, genres GenreResolver, logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{
		pages:      pages,
		exclusions: exclusions,
		genres:     genres,
		logger:     logging.NewComponentLogger(logger, "discovery"),
		maxPages:   MaxCatalogPages,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// FindPopularMovie returns the id of the most popular movie matching filter
// that is not in the exclusion set.
func (e *Engine) FindPopularMovie(ctx context.Context, filter Filter) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.RequestIDFromContext(ctx); !ok {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, e.logger)

	query := e.buildQuery(ctx, filter)
	logger.Debug("discovery started", logging.String("filter", filter.String()))

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		result, err := e.pages.FetchPage(ctx, query, page)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrRequestFailed, page, err)
		}

		for _, movie := range result.Results {
			excluded, err := e.exclusions.Exists(ctx, movie.ID)
			if err != nil {
				return "", fmt.Errorf("%w: movie %s: %w", ErrExclusionCheck, movie.ID, err)
			}
			if !excluded {
				logger.Info("discovery found movie",
					logging.String(logging.FieldEventType, "discovery_found"),
					logging.String("movie_id", movie.ID),
					logging.Int("page", page),
					logging.Int("rank", movie.Rank),
				)
				return movie.ID, nil
			}
		}

		last := min(result.TotalPages, e.maxPages)
		if page >= last {
			logger.Info("discovery exhausted",
				logging.String(logging.FieldEventType, "discovery_exhausted"),
				logging.Int("pages", page),
				logging.Int("total_pages", result.TotalPages),
			)
			return "", ErrNoQualifyingMovie
		}
	}
}

func (e *Engine) buildQuery(ctx context.Context, filter Filter) catalog.DiscoverQuery {
	var query catalog.DiscoverQuery
	if filter.Year != nil {
		year := *filter.Year
		query.Year = &year
	}
	if filter.Genre == nil {
		return query
	}
	name := *filter.Genre
	if e.genres != nil {
		if id, ok := e.genres.Resolve(name); ok {
			query.GenreID = &id
			return query
		}
	}
	logging.WarnWithContext(ctx, e.logger, "genre not found; searching all genres", "genre_unresolved",
		logging.String("genre", name),
		logging.String(logging.FieldErrorHint, "run 'roulette genres' to list valid names"),
		logging.String(logging.FieldImpact, "results are not filtered by genre"),
	)
	return query
}
