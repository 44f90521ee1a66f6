package cart

import (
	"log"
	"sync"
)

// Archive persists cart snapshots between requests so a session survives a
// page reload. Durability is a convenience, not a correctness requirement:
// the Store logs archive failures and carries on with the in-memory cart.
type Archive interface {
	SaveCart(sessionID string, snap Snapshot) error
	LoadCart(sessionID string) (Snapshot, bool, error)
	DeleteCart(sessionID string) error
}

// Store owns one Cart per customer session. It is constructed once during
// wiring and handed explicitly to every consumer; nothing reaches it through
// package-level state.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*Cart
	archive Archive // may be nil
}

func NewStore(archive Archive) *Store {
	return &Store{
		carts:   make(map[string]*Cart),
		archive: archive,
	}
}

// Get returns the cart for the session, creating it if needed. On first
// access it tries to restore an archived snapshot.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c := New()
	if s.archive != nil {
		snap, found, err := s.archive.LoadCart(sessionID)
		if err != nil {
			log.Printf("cart store: failed to restore session %s: %v", sessionID, err)
		} else if found {
			c.Restore(snap)
		}
	}
	s.carts[sessionID] = c
	return c
}

// Persist archives the session's current snapshot. Failures are logged only.
func (s *Store) Persist(sessionID string) {
	if s.archive == nil {
		return
	}
	s.mu.Lock()
	c, ok := s.carts[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.archive.SaveCart(sessionID, c.Snapshot()); err != nil {
		log.Printf("cart store: failed to archive session %s: %v", sessionID, err)
	}
}

// Drop discards the session's cart from memory and the archive.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.DeleteCart(sessionID); err != nil {
			log.Printf("cart store: failed to delete archived session %s: %v", sessionID, err)
		}
	}
}
