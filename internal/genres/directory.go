// Package genres caches the mapping from genre display names to catalog ids.
//
// The directory is populated explicitly (Refresh or EnsureLoaded) and is
// never invalidated within a session. Resolve never fetches: an unpopulated
// directory simply resolves nothing, which lets discovery fall back to an
// unfiltered search.
package genres

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"movieroulette/internal/logging"
)

// Lister fetches the catalog's genre list.
type Lister interface {
	FetchGenreList(ctx context.Context) (map[string]int, error)
}

// Directory is a session-scoped genre name to id cache. It is safe for
// concurrent use.
type Directory struct {
	source Lister
	logger *slog.Logger

	mu     sync.RWMutex
	byName map[string]int
	folded map[string]int
}

// NewDirectory creates an empty directory backed by source.
func NewDirectory(source Lister, logger *slog.Logger) *Directory {
	return &Directory{
		source: source,
		logger: logging.NewComponentLogger(logger, "genres"),
	}
}

// Refresh fetches the genre list and replaces the cached mapping. On error the
// previous mapping is kept.
func (d *Directory) Refresh(ctx context.Context) error {
	if d.source == nil {
		return errors.New("genre directory has no source")
	}
	list, err := d.source.FetchGenreList(ctx)
	if err != nil {
		return err
	}
	folder := cases.Fold()
	byName := make(map[string]int, len(list))
	folded := make(map[string]int, len(list))
	for name, id := range list {
		byName[name] = id
		folded[folder.String(strings.TrimSpace(name))] = id
	}

	d.mu.Lock()
	d.byName = byName
	d.folded = folded
	d.mu.Unlock()

	d.logger.Debug("genre directory refreshed", logging.Int("genres", len(byName)))
	return nil
}

// EnsureLoaded populates the directory on first use and is a no-op afterwards.
func (d *Directory) EnsureLoaded(ctx context.Context) error {
	if d.Populated() {
		return nil
	}
	return d.Refresh(ctx)
}

// Populated reports whether the directory holds a genre list.
func (d *Directory) Populated() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byName != nil
}

// Resolve returns the catalog id for a genre name. Exact matches win;
// otherwise the name is compared case-insensitively.
func (d *Directory) Resolve(name string) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.byName == nil {
		return 0, false
	}
	if id, ok := d.byName[name]; ok {
		return id, true
	}
	id, ok := d.folded[cases.Fold().String(strings.TrimSpace(name))]
	return id, ok
}

// Names returns the cached genre names in alphabetical order.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
