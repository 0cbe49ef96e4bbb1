// Package memory provides an in-memory storage.Store, used by tests and as
// a throwaway backend when persistence is disabled.
package memory

import (
	"context"
	"sync"

	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps module snapshots in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	credit    models.CreditData
	orders    models.OrderData
	priceList models.PriceListData
	over      models.OverData

	// FailSaves makes every Save return this error, for testing the
	// optimistic-mutation semantics of the services.
	FailSaves error
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) LoadCredit(ctx context.Context) (*models.CreditData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.credit
	return &data, nil
}

func (s *MemoryStore) SaveCredit(ctx context.Context, data *models.CreditData) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credit = *data
	return nil
}

func (s *MemoryStore) LoadOrders(ctx context.Context) (*models.OrderData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.orders
	return &data, nil
}

func (s *MemoryStore) SaveOrders(ctx context.Context, data *models.OrderData) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = *data
	return nil
}

func (s *MemoryStore) LoadPriceList(ctx context.Context) (*models.PriceListData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.priceList
	return &data, nil
}

func (s *MemoryStore) SavePriceList(ctx context.Context, data *models.PriceListData) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceList = *data
	return nil
}

func (s *MemoryStore) LoadOverItems(ctx context.Context) (*models.OverData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.over
	return &data, nil
}

func (s *MemoryStore) SaveOverItems(ctx context.Context, data *models.OverData) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.over = *data
	return nil
}
