// Package memory provides process-local repositories used with STORE_DRIVER=memory and in tests.
// The three repositories share one Store so that deleting a product or account
// cascades into carts the same way the Postgres foreign keys do.
package memory

import (
	"sync"
	"time"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
	byEmail  map[string]string
	products map[string]*entity.Product
	carts    map[string]*entity.Cart

	lockMu    sync.Mutex
	cartLocks map[string]*sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*entity.Account),
		byEmail:   make(map[string]string),
		products:  make(map[string]*entity.Product),
		carts:     make(map[string]*entity.Cart),
		cartLocks: make(map[string]*sync.Mutex),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// cartLock returns the mutex serializing Mutate calls for one account.
func (s *Store) cartLock(accountID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	m, ok := s.cartLocks[accountID]
	if !ok {
		m = &sync.Mutex{}
		s.cartLocks[accountID] = m
	}
	return m
}

func (s *Store) DeleteAccount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		delete(s.byEmail, a.Email)
	}
	delete(s.accounts, id)
	delete(s.carts, id)
}
