package roulette

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"movieroulette/internal/catalog"
	"movieroulette/internal/config"
	"movieroulette/internal/details"
	"movieroulette/internal/discovery"
	"movieroulette/internal/genres"
	"movieroulette/internal/logging"
	"movieroulette/internal/seen"
)

// SeenStore is the subset of the seen list a session mutates and lists.
type SeenStore interface {
	discovery.ExclusionSet
	Add(ctx context.Context, id, title string) error
	DeleteByID(ctx context.Context, id string) error
	ResetAll(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]seen.Record, error)
}

// Session runs user-level roulette operations.
type Session struct {
	engine    *discovery.Engine
	resolver  *details.Resolver
	directory *genres.Directory
	store     SeenStore
	logger    *slog.Logger
	closeFn   func() error
}

// New assembles a session from pre-built collaborators.
func New(engine *discovery.Engine, resolver *details.Resolver, directory *genres.Directory, store SeenStore, logger *slog.Logger) *Session {
	return &Session{
		engine:    engine,
		resolver:  resolver,
		directory: directory,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "session"),
	}
}

// Open builds the catalog client, seen store, genre directory, engine and
// resolver described by cfg.
func Open(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	client, err := catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		catalog.WithTimeout(cfg.RequestTimeout()),
		catalog.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	store, err := seen.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}

	directory := genres.NewDirectory(client, logger)
	engine := discovery.New(client, store, directory, logger, discovery.WithMaxPages(cfg.TMDB.MaxPages))
	resolver := details.NewResolver(client, logger, details.WithCrossReferenceBaseURL(cfg.TMDB.CrossReferenceBaseURL))

	session := New(engine, resolver, directory, store, logger)
	session.closeFn = store.Close
	return session, nil
}

// Close releases resources acquired by Open.
func (s *Session) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Suggest finds the most popular unseen movie matching filter and loads its
// details.
func (s *Session) Suggest(ctx context.Context, filter discovery.Filter) (*details.Movie, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	if filter.Genre != nil {
		s.loadGenres(ctx)
	}

	search := s.engine.Start(ctx, filter)
	defer search.Cancel()
	id, err := search.Wait(ctx)
	if err != nil {
		return nil, err
	}
	logging.WithContext(logging.WithRequestID(ctx, search.ID()), s.logger).Info("suggestion ready",
		logging.String(logging.FieldEventType, "suggestion_ready"),
		logging.String("movie_id", id),
		logging.String("filter", filter.String()),
	)
	return s.resolver.Resolve(ctx, id)
}

// Show loads the details of a specific movie.
func (s *Session) Show(ctx context.Context, id string) (*details.Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, seen.ErrInvalidID
	}
	return s.resolver.Resolve(ctx, id)
}

// Commit adds a displayed movie to the seen list.
func (s *Session) Commit(ctx context.Context, movie *details.Movie) error {
	if movie == nil {
		return errors.New("no movie to commit")
	}
	return s.MarkSeen(ctx, movie.ID, movie.Title)
}

// MarkSeen adds id to the seen list.
func (s *Session) MarkSeen(ctx context.Context, id, title string) error {
	if err := s.store.Add(ctx, id, title); err != nil {
		return err
	}
	s.logger.Info("movie marked seen",
		logging.String(logging.FieldEventType, "seen_added"),
		logging.String("movie_id", id),
		logging.String("title", title),
	)
	return nil
}

// Forget removes id from the seen list.
func (s *Session) Forget(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}

// Reset clears the seen list and returns how many movies were removed.
func (s *Session) Reset(ctx context.Context) (int64, error) {
	return s.store.ResetAll(ctx)
}

// Seen lists the seen movies, oldest first.
func (s *Session) Seen(ctx context.Context) ([]seen.Record, error) {
	return s.store.List(ctx)
}

// Genres returns the genre names accepted by the genre filter, loading the
// directory on first use.
func (s *Session) Genres(ctx context.Context) ([]string, error) {
	if s.directory == nil {
		return nil, errors.New("genre directory not configured")
	}
	if err := s.directory.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.directory.Names(), nil
}

func (s *Session) loadGenres(ctx context.Context) {
	if s.directory == nil || s.directory.Populated() {
		return
	}
	if err := s.directory.EnsureLoaded(ctx); err != nil {
		logging.WarnWithContext(ctx, s.logger, "genre list unavailable", "genre_list_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access and tmdb.api_key"),
			logging.String(logging.FieldImpact, "the genre filter will be ignored"),
		)
	}
}

// Health reports whether the seen store is reachable.
func (s *Session) Health(ctx context.Context) error {
	if pinger, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
