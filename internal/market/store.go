// Package market owns the client-side view of the request marketplace: the
// cached list snapshots, the lifecycle action dispatcher and the polling
// refresher. The backend stays authoritative; the cache is never trusted
// beyond the current render.
package market

import (
	"sync"

	"github.com/aun009/resourcify/internal/domain"
)

// Store caches the latest public and "my" request snapshots. Destructive
// actions remove records locally before the server confirms; the next
// refresh restores the truth either way.
type Store struct {
	mu     sync.RWMutex
	public []domain.Request
	mine   []domain.Request
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetPublic(requests []domain.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.public = requests
}

func (s *Store) SetMine(requests []domain.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mine = requests
}

func (s *Store) Public() []domain.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Request, len(s.public))
	copy(out, s.public)
	return out
}

func (s *Store) Mine() []domain.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Request, len(s.mine))
	copy(out, s.mine)
	return out
}

// Find looks a request up by ID in either snapshot.
func (s *Store) Find(id int64) (domain.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range [][]domain.Request{s.mine, s.public} {
		for _, req := range list {
			if req.ID == id {
				return req, true
			}
		}
	}
	return domain.Request{}, false
}

// RemoveLocally drops a request from both snapshots, the optimistic half of
// a delete.
func (s *Store) RemoveLocally(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.public = withoutID(s.public, id)
	s.mine = withoutID(s.mine, id)
}

// ClearMineLocally empties the "my" snapshot, the optimistic half of
// clear-all-activity.
func (s *Store) ClearMineLocally() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mine = nil
}

func withoutID(list []domain.Request, id int64) []domain.Request {
	out := list[:0]
	for _, req := range list {
		if req.ID != id {
			out = append(out, req)
		}
	}
	return out
}
