package core

import (
	"context"
	"sort"
	"sync"
)

// MemoryAccountStore keeps accounts in a process-local map. Default backend
// for development and the store double used by handler tests.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]Account
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: map[int64]Account{}}
}

func (s *MemoryAccountStore) Create(ctx context.Context, req AccountRequest) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a := Account{ID: s.nextID, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *MemoryAccountStore) FindByID(ctx context.Context, id int64) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (s *MemoryAccountStore) FindAll(ctx context.Context) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryAccountStore) Update(ctx context.Context, id int64, req AccountRequest) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return Account{}, ErrAccountNotFound
	}
	a := Account{ID: id, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	s.accounts[id] = a
	return a, nil
}

func (s *MemoryAccountStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *MemoryAccountStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok, nil
}
