// Package orders manages order categories, item templates and VAT-priced
// orders. All derived money fields flow through internal/pricing so the
// same rule applies to templates, new orders and edits.
package orders

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

// Service owns the in-memory order tables. Same optimistic-persistence and
// locking model as the ledger service.
type Service struct {
	mu    sync.Mutex
	store storage.Store
	data  models.OrderData
	now   func() time.Time
}

// New creates an orders service over the given store.
func New(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Load hydrates the in-memory state from the store. Call once at startup.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.store.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("load order data: %w", err)
	}
	s.mu.Lock()
	s.data = *data
	s.mu.Unlock()
	return nil
}

func (s *Service) persistLocked(ctx context.Context) error {
	snapshot := s.data
	if err := s.store.SaveOrders(ctx, &snapshot); err != nil {
		slog.Error("persist order snapshot failed", "error", err)
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *Service) categoryLocked(id string) (*models.OrderCategory, error) {
	for i := range s.data.Categories {
		if s.data.Categories[i].ID == id {
			return &s.data.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
}

func validVATPercentage(pct float64) bool {
	return pct >= 0 && pct <= 100
}

// AddCategory creates an order category. Names are unique
// case-insensitively; the VAT percentage must be between 0 and 100.
func (s *Service) AddCategory(ctx context.Context, name string, vatPercentage float64) (*models.OrderCategory, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("category name is required: %w", apperr.ErrValidation)
	}
	if !validVATPercentage(vatPercentage) {
		return nil, fmt.Errorf("vat percentage must be between 0 and 100: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Categories {
		if strings.EqualFold(s.data.Categories[i].Name, trimmed) {
			return nil, fmt.Errorf("category %q already exists: %w", trimmed, apperr.ErrDuplicateName)
		}
	}

	category := models.OrderCategory{
		ID:            uuid.New().String(),
		Name:          trimmed,
		VATPercentage: vatPercentage,
		CreatedAt:     s.now(),
	}
	s.data.Categories = append(s.data.Categories, category)

	slog.Info("category added", "category_id", category.ID, "name", category.Name)
	return &category, s.persistLocked(ctx)
}

// UpdateCategory renames a category and/or changes its VAT percentage.
func (s *Service) UpdateCategory(ctx context.Context, id, name string, vatPercentage float64) (*models.OrderCategory, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("category name is required: %w", apperr.ErrValidation)
	}
	if !validVATPercentage(vatPercentage) {
		return nil, fmt.Errorf("vat percentage must be between 0 and 100: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.categoryLocked(id)
	if err != nil {
		return nil, err
	}
	for i := range s.data.Categories {
		if s.data.Categories[i].ID != id && strings.EqualFold(s.data.Categories[i].Name, trimmed) {
			return nil, fmt.Errorf("category %q already exists: %w", trimmed, apperr.ErrDuplicateName)
		}
	}

	category.Name = trimmed
	category.VATPercentage = vatPercentage
	updated := *category
	return &updated, s.persistLocked(ctx)
}

// DeleteCategory removes a category and cascades to its templates and
// orders.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.categoryLocked(id); err != nil {
		return err
	}

	categories := s.data.Categories[:0]
	for _, c := range s.data.Categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}
	s.data.Categories = categories

	templates := s.data.Templates[:0]
	for _, t := range s.data.Templates {
		if t.CategoryID != id {
			templates = append(templates, t)
		}
	}
	s.data.Templates = templates

	orders := s.data.Orders[:0]
	for _, o := range s.data.Orders {
		if o.CategoryID != id {
			orders = append(orders, o)
		}
	}
	s.data.Orders = orders

	slog.Info("category deleted", "category_id", id)
	return s.persistLocked(ctx)
}

// ListCategories returns all categories sorted by name.
func (s *Service) ListCategories() []models.OrderCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]models.OrderCategory, len(s.data.Categories))
	copy(categories, s.data.Categories)
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories
}
