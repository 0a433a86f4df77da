package discovery

import (
	"context"

	"github.com/google/uuid"

	"movieroulette/internal/logging"
)

// Search is a handle to a discovery running in the background.
type Search struct {
	id     string
	filter Filter
	cancel context.CancelFunc
	done   chan struct{}

	movieID string
	err     error
}

// Start launches FindPopularMovie on a goroutine. The search stops when ctx
// is cancelled or Cancel is called.
func (e *Engine) Start(ctx context.Context, filter Filter) *Search {
	if ctx == nil {
		ctx = context.Background()
	}
	id, ok := logging.RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = logging.WithRequestID(ctx, id)
	}
	ctx, cancel := context.WithCancel(ctx)

	search := &Search{
		id:     id,
		filter: filter,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(search.done)
		defer cancel()
		search.movieID, search.err = e.FindPopularMovie(ctx, filter)
	}()
	return search
}

// ID returns the correlation id attached to the search's log lines.
func (s *Search) ID() string { return s.id }

// Filter returns the filter the search was started with.
func (s *Search) Filter() Filter { return s.filter }

// Done is closed when the search finishes.
func (s *Search) Done() <-chan struct{} { return s.done }

// Cancel stops the search. It is safe to call more than once.
func (s *Search) Cancel() { s.cancel() }

// Result returns the outcome without blocking, or ErrSearchPending while the
// search is still running.
func (s *Search) Result() (string, error) {
	select {
	case <-s.done:
		return s.movieID, s.err
	default:
		return "", ErrSearchPending
	}
}

// Wait blocks until the search finishes or ctx ends. Ending ctx does not
// cancel the search.
func (s *Search) Wait(ctx context.Context) (string, error) {
	select {
	case <-s.done:
		return s.movieID, s.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
