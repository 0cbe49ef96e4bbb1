package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
)

// AddOverItem creates a surplus counter. Names are unique
// case-insensitively; the quantity must not be negative.
func (s *Service) AddOverItem(ctx context.Context, name string, quantity int) (*models.OverItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("item name is required: %w", apperr.ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.over.Items {
		if strings.EqualFold(s.over.Items[i].Name, trimmed) {
			return nil, fmt.Errorf("over item %q already exists: %w", trimmed, apperr.ErrDuplicateName)
		}
	}

	item := models.OverItem{
		ID:            uuid.New().String(),
		Name:          trimmed,
		Quantity:      quantity,
		LastUpdatedAt: s.now(),
	}
	s.over.Items = append(s.over.Items, item)

	slog.Info("over item added", "item_id", item.ID, "name", item.Name, "quantity", quantity)
	return &item, s.persistOverLocked(ctx)
}

// SetOverQuantity replaces a counter's quantity and stamps the update time.
func (s *Service) SetOverQuantity(ctx context.Context, id string, quantity int) (*models.OverItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.over.Items {
		if s.over.Items[i].ID == id {
			s.over.Items[i].Quantity = quantity
			s.over.Items[i].LastUpdatedAt = s.now()
			updated := s.over.Items[i]
			return &updated, s.persistOverLocked(ctx)
		}
	}
	return nil, fmt.Errorf("over item %s: %w", id, apperr.ErrNotFound)
}

// AdjustOverQuantity adds delta to a counter, clamping at zero.
func (s *Service) AdjustOverQuantity(ctx context.Context, id string, delta int) (*models.OverItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.over.Items {
		if s.over.Items[i].ID == id {
			q := s.over.Items[i].Quantity + delta
			if q < 0 {
				q = 0
			}
			s.over.Items[i].Quantity = q
			s.over.Items[i].LastUpdatedAt = s.now()
			updated := s.over.Items[i]
			return &updated, s.persistOverLocked(ctx)
		}
	}
	return nil, fmt.Errorf("over item %s: %w", id, apperr.ErrNotFound)
}

// DeleteOverItem removes one counter.
func (s *Service) DeleteOverItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.over.Items[:0]
	found := false
	for _, it := range s.over.Items {
		if it.ID == id {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return fmt.Errorf("over item %s: %w", id, apperr.ErrNotFound)
	}
	s.over.Items = items

	slog.Info("over item deleted", "item_id", id)
	return s.persistOverLocked(ctx)
}

// ListOverItems returns the counters sorted by name.
func (s *Service) ListOverItems() []models.OverItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.OverItem, len(s.over.Items))
	copy(items, s.over.Items)
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// PriceListSnapshot returns a copy of the price list record set, for export.
func (s *Service) PriceListSnapshot() models.PriceListData {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.PriceListData{Items: append([]models.PriceItem(nil), s.priceList.Items...)}
}

// OverSnapshot returns a copy of the over record set, for export.
func (s *Service) OverSnapshot() models.OverData {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.OverData{Items: append([]models.OverItem(nil), s.over.Items...)}
}

// ReplacePriceList swaps the whole price list, for import.
func (s *Service) ReplacePriceList(ctx context.Context, data models.PriceListData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.priceList = data
	return s.persistPriceListLocked(ctx)
}

// ReplaceOver swaps the whole over record set, for import.
func (s *Service) ReplaceOver(ctx context.Context, data models.OverData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.over = data
	return s.persistOverLocked(ctx)
}
