package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/glabrego/reels-cli/internal/reels"
)

// LookaheadThreshold is how many items before the end the next page is
// requested.
const LookaheadThreshold = 2

var (
	ErrInFlight    = errors.New("page is already being fetched")
	ErrInitialLoad = errors.New("initial feed load failed")
	ErrNoMorePages = errors.New("feed has no more pages")
	ErrSuperseded  = errors.New("page result superseded by a reload")
)

type Lister interface {
	ListReels(ctx context.Context, mode reels.Mode, page, limit int) (reels.Page, error)
}

// Result describes a successful page load. Reset is set for page 1, after
// which the current index must go back to 0.
type Result struct {
	Page  int
	Added int
	Reset bool
}

// Loader fetches pages into a Store with at most one fetch per page in
// flight. Its lifetime context scopes every fetch; Close cancels them.
type Loader struct {
	store  *Store
	client Lister
	limit  int
	logger *slog.Logger

	lifetime context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	inFlight map[int]struct{}
	epoch    uint64
}

func NewLoader(store *Store, client Lister, limit int, logger *slog.Logger) *Loader {
	if limit < 1 {
		limit = reels.DefaultPageLimit
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &Loader{
		store:    store,
		client:   client,
		limit:    limit,
		logger:   logger,
		lifetime: lifetime,
		cancel:   cancel,
		inFlight: make(map[int]struct{}),
	}
}

func (l *Loader) Store() *Store {
	return l.store
}

// Close cancels every in-flight fetch. Results arriving afterwards are
// dropped.
func (l *Loader) Close() {
	l.cancel()
}

func (l *Loader) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inFlight)
}

// Request is a reserved page fetch. Do must be called exactly once.
type Request struct {
	loader *Loader
	page   int
	epoch  uint64
}

func (r *Request) Page() int {
	return r.page
}

// Begin reserves page for fetching. It fails with ErrInFlight when the same
// page is already being fetched.
func (l *Loader) Begin(page int) (*Request, error) {
	if page < 1 {
		page = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.lifetime.Err(); err != nil {
		return nil, err
	}
	if _, busy := l.inFlight[page]; busy {
		return nil, fmt.Errorf("page %d: %w", page, ErrInFlight)
	}
	if page > 1 && !l.store.Mode().Paginated() {
		return nil, fmt.Errorf("page %d: %w", page, ErrNoMorePages)
	}
	if page == 1 {
		l.epoch++
		l.store.markLoading()
	}
	l.inFlight[page] = struct{}{}
	return &Request{loader: l, page: page, epoch: l.epoch}, nil
}

// Next reserves the following page when current is within the lookahead
// threshold of the end, more pages exist and nothing is in flight.
func (l *Loader) Next(current int) (*Request, bool) {
	l.mu.Lock()
	if !l.shouldAppendLocked(current) {
		l.mu.Unlock()
		return nil, false
	}
	next := l.store.Cursor().Page + 1
	l.mu.Unlock()

	req, err := l.Begin(next)
	if err != nil {
		return nil, false
	}
	return req, true
}

func (l *Loader) shouldAppendLocked(current int) bool {
	if len(l.inFlight) > 0 {
		return false
	}
	n := l.store.Len()
	if n == 0 || current < n-LookaheadThreshold {
		return false
	}
	cursor := l.store.Cursor()
	return cursor.HasNextPage && l.store.Status() != StatusFailed
}

// LoadPage fetches page: page 1 replaces the list, later pages append.
func (l *Loader) LoadPage(ctx context.Context, page int) (Result, error) {
	req, err := l.Begin(page)
	if err != nil {
		return Result{}, err
	}
	return req.Do(ctx)
}

func (r *Request) Do(ctx context.Context) (Result, error) {
	l := r.loader
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.lifetime, cancel)
	defer stop()

	page, err := l.client.ListReels(ctx, l.store.Mode(), r.page, l.limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, r.page)

	if l.lifetime.Err() != nil {
		return Result{}, fmt.Errorf("page %d: %w", r.page, context.Canceled)
	}
	if r.epoch != l.epoch {
		return Result{}, fmt.Errorf("page %d: %w", r.page, ErrSuperseded)
	}

	if err != nil {
		if r.page == 1 && l.store.Len() > 0 {
			l.logger.Warn("feed reload failed, keeping loaded reels", "err", err)
			return Result{}, fmt.Errorf("reload feed: %w", err)
		}
		if r.page == 1 {
			l.store.fail(err)
			l.logger.Error("initial feed load failed", "mode", l.store.Mode().String(), "err", err)
			return Result{}, fmt.Errorf("%w: %w", ErrInitialLoad, err)
		}
		l.store.stopPagination()
		l.logger.Warn("pagination stopped", "page", r.page, "err", err)
		return Result{}, fmt.Errorf("load page %d: %w", r.page, err)
	}

	if r.page == 1 {
		l.store.replace(page, r.page)
		l.logger.Debug("feed loaded", "reels", len(page.Reels), "has_next", page.HasNextPage)
		return Result{Page: 1, Added: l.store.Len(), Reset: true}, nil
	}
	added := l.store.append(page, r.page)
	l.logger.Debug("page appended", "page", r.page, "added", added)
	return Result{Page: r.page, Added: added}, nil
}
