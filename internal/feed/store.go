// Package feed owns the loaded reel list and its pagination.
package feed

import (
	"fmt"
	"sync"

	"github.com/glabrego/reels-cli/internal/reels"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	// StatusFailed means the first page could not be loaded; the feed has
	// nothing to show until a retry succeeds.
	StatusFailed
	// StatusExhausted means the last page has been loaded.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	case StatusExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Cursor is the pagination position of a feed.
type Cursor struct {
	Page        int
	HasNextPage bool
	Mode        reels.Mode
}

// Store is the ordered, append-only list of loaded reels. Only a page-1
// load replaces it; nothing is ever reordered or evicted.
type Store struct {
	mu     sync.RWMutex
	reels  []reels.Reel
	index  map[string]int
	cursor Cursor
	status Status
	err    error
}

func NewStore(mode reels.Mode) *Store {
	return &Store{
		index:  make(map[string]int),
		cursor: Cursor{Mode: mode},
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reels)
}

func (s *Store) IDAt(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.reels) {
		return "", false
	}
	return s.reels[i].ID, true
}

// At returns a copy of the reel at index i.
func (s *Store) At(i int) (reels.Reel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.reels) {
		return reels.Reel{}, false
	}
	return s.reels[i], true
}

func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

func (s *Store) Snapshot() []reels.Reel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]reels.Reel(nil), s.reels...)
}

func (s *Store) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err is the error of a failed first-page load.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Update mutates the reel with the given id in place.
func (s *Store) Update(id string, fn func(*reels.Reel)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	fn(&s.reels[i])
	return true
}

func (s *Store) replace(page reels.Page, pageNum int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reels = make([]reels.Reel, 0, len(page.Reels))
	s.index = make(map[string]int, len(page.Reels))
	s.appendLocked(page.Reels)
	s.advanceLocked(page, pageNum)
}

func (s *Store) append(page reels.Page, pageNum int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.appendLocked(page.Reels)
	s.advanceLocked(page, pageNum)
	return added
}

func (s *Store) appendLocked(batch []reels.Reel) int {
	added := 0
	for _, r := range batch {
		if r.ID == "" {
			continue
		}
		if _, dup := s.index[r.ID]; dup {
			continue
		}
		s.index[r.ID] = len(s.reels)
		s.reels = append(s.reels, r)
		added++
	}
	return added
}

func (s *Store) advanceLocked(page reels.Page, pageNum int) {
	s.cursor.Page = pageNum
	s.cursor.HasNextPage = page.HasNextPage && s.cursor.Mode.Paginated() && len(page.Reels) > 0
	s.err = nil
	s.status = StatusReady
	if !s.cursor.HasNextPage {
		s.status = StatusExhausted
	}
}

func (s *Store) markLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reels) == 0 {
		s.status = StatusLoading
		s.err = nil
	}
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
}

func (s *Store) stopPagination() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.HasNextPage = false
	if s.status != StatusFailed {
		s.status = StatusExhausted
	}
}

func (s *Store) Mode() reels.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Mode
}
