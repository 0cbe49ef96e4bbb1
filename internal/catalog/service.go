// Package catalog manages the standalone price list and the surplus
// ("over") stock counters. Both are small flat lists with the same
// snapshot-persistence model the other services use.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/storage"
)

// Service owns the in-memory price list and over items.
type Service struct {
	mu        sync.Mutex
	store     storage.Store
	priceList models.PriceListData
	over      models.OverData
	now       func() time.Time
}

// New creates a catalog service over the given store.
func New(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Load hydrates both lists from the store. Call once at startup.
func (s *Service) Load(ctx context.Context) error {
	priceList, err := s.store.LoadPriceList(ctx)
	if err != nil {
		return fmt.Errorf("load price list: %w", err)
	}
	over, err := s.store.LoadOverItems(ctx)
	if err != nil {
		return fmt.Errorf("load over items: %w", err)
	}
	s.mu.Lock()
	s.priceList = *priceList
	s.over = *over
	s.mu.Unlock()
	return nil
}

func (s *Service) persistPriceListLocked(ctx context.Context) error {
	snapshot := s.priceList
	if err := s.store.SavePriceList(ctx, &snapshot); err != nil {
		slog.Error("persist price list failed", "error", err)
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *Service) persistOverLocked(ctx context.Context) error {
	snapshot := s.over
	if err := s.store.SaveOverItems(ctx, &snapshot); err != nil {
		slog.Error("persist over items failed", "error", err)
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

// AddPriceItem creates a price-list entry. Names are unique
// case-insensitively across the whole list.
func (s *Service) AddPriceItem(ctx context.Context, name string, unitPrice float64, category string) (*models.PriceItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("item name is required: %w", apperr.ErrValidation)
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price must not be negative: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.priceList.Items {
		if strings.EqualFold(s.priceList.Items[i].Name, trimmed) {
			return nil, fmt.Errorf("price item %q already exists: %w", trimmed, apperr.ErrDuplicateName)
		}
	}

	item := models.PriceItem{
		ID:        uuid.New().String(),
		Name:      trimmed,
		UnitPrice: unitPrice,
		Category:  strings.TrimSpace(category),
		CreatedAt: s.now(),
	}
	s.priceList.Items = append(s.priceList.Items, item)

	slog.Info("price item added", "item_id", item.ID, "name", item.Name)
	return &item, s.persistPriceListLocked(ctx)
}

// UpdatePriceItem changes an entry's name, price and category.
func (s *Service) UpdatePriceItem(ctx context.Context, id, name string, unitPrice float64, category string) (*models.PriceItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("item name is required: %w", apperr.ErrValidation)
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("unit price must not be negative: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var item *models.PriceItem
	for i := range s.priceList.Items {
		it := &s.priceList.Items[i]
		if it.ID == id {
			item = it
			continue
		}
		if strings.EqualFold(it.Name, trimmed) {
			return nil, fmt.Errorf("price item %q already exists: %w", trimmed, apperr.ErrDuplicateName)
		}
	}
	if item == nil {
		return nil, fmt.Errorf("price item %s: %w", id, apperr.ErrNotFound)
	}

	item.Name = trimmed
	item.UnitPrice = unitPrice
	item.Category = strings.TrimSpace(category)

	updated := *item
	return &updated, s.persistPriceListLocked(ctx)
}

// DeletePriceItem removes one entry.
func (s *Service) DeletePriceItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.priceList.Items[:0]
	found := false
	for _, it := range s.priceList.Items {
		if it.ID == id {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return fmt.Errorf("price item %s: %w", id, apperr.ErrNotFound)
	}
	s.priceList.Items = items

	slog.Info("price item deleted", "item_id", id)
	return s.persistPriceListLocked(ctx)
}

// ListPriceItems returns the price list sorted by name.
func (s *Service) ListPriceItems() []models.PriceItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.PriceItem, len(s.priceList.Items))
	copy(items, s.priceList.Items)
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// SearchPriceItems matches names by case-insensitive substring.
func (s *Service) SearchPriceItems(query string) []models.PriceItem {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []models.PriceItem
	for _, it := range s.priceList.Items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			matches = append(matches, it)
		}
	}
	return matches
}
