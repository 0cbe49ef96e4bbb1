package orders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/pricing"
)

// dateFormat renders order dates in duplicate errors ("10 Jan 2024").
const dateFormat = "02 Jan 2006"

// ItemInput carries the caller-supplied fields of one order line.
type ItemInput struct {
	TemplateID    string
	Name          string
	Quantity      float64
	UnitPrice     float64
	IsVATNil      bool
	IsVATIncluded bool
	VATPercentage float64
	IsAvailable   bool
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// buildItem derives the money fields for one line. The derivation is the
// same one templates and edits use; unavailable lines price to zero but
// stay in the list.
func buildItem(in ItemInput) models.OrderItem {
	line := pricing.DeriveItem(pricing.Item{
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		VATNil:        in.IsVATNil,
		VATIncluded:   in.IsVATIncluded,
		VATPercentage: in.VATPercentage,
		Available:     in.IsAvailable,
	})
	return models.OrderItem{
		ID:            uuid.New().String(),
		TemplateID:    in.TemplateID,
		Name:          in.Name,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		IsVATNil:      in.IsVATNil,
		IsVATIncluded: in.IsVATIncluded,
		VATPercentage: in.VATPercentage,
		VATAmount:     line.VATAmount,
		TotalPrice:    line.TotalPrice,
		IsAvailable:   in.IsAvailable,
	}
}

// cloneOrder copies an order with its own Items array, so callers can hold
// the result outside the service lock.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

func orderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		if it.IsAvailable {
			total += it.TotalPrice
		}
	}
	return total
}

func buildItems(inputs []ItemInput) []models.OrderItem {
	items := make([]models.OrderItem, len(inputs))
	for i, in := range inputs {
		items[i] = buildItem(in)
	}
	return items
}

// AddOrder creates an order for a category and calendar day. At most one
// order may exist per (category, day); the duplicate error names the
// category and the formatted date so callers can present it specifically.
// Orders whose available items sum to zero are rejected.
func (s *Service) AddOrder(ctx context.Context, categoryID string, orderDate time.Time, inputs []ItemInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.categoryLocked(categoryID)
	if err != nil {
		return nil, err
	}

	for i := range s.data.Orders {
		o := &s.data.Orders[i]
		if o.CategoryID == categoryID && sameDay(o.OrderDate, orderDate) {
			return nil, fmt.Errorf("an order for %q on %s already exists: %w",
				category.Name, orderDate.Format(dateFormat), apperr.ErrDuplicateOrder)
		}
	}

	items := buildItems(inputs)
	total := orderTotal(items)
	if total == 0 {
		return nil, fmt.Errorf("order total is zero, nothing to order: %w", apperr.ErrValidation)
	}

	order := models.Order{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		OrderDate:  orderDate,
		Items:      items,
		TotalCost:  total,
		CreatedAt:  s.now(),
	}
	s.data.Orders = append(s.data.Orders, order)

	slog.Info("order added", "order_id", order.ID, "category_id", categoryID,
		"order_date", orderDate.Format(dateFormat), "total_cost", total)
	return &order, s.persistLocked(ctx)
}

// UpdateOrder replaces an order's date and items, recomputing the total and
// stamping lastEditedAt. The duplicate-day rule applies only on creation.
func (s *Service) UpdateOrder(ctx context.Context, id string, orderDate time.Time, inputs []ItemInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order *models.Order
	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			order = &s.data.Orders[i]
			break
		}
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}

	items := buildItems(inputs)
	edited := s.now()

	order.OrderDate = orderDate
	order.Items = items
	order.TotalCost = orderTotal(items)
	order.LastEditedAt = &edited

	updated := *order
	return &updated, s.persistLocked(ctx)
}

// DeleteOrder removes one order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.data.Orders[:0]
	found := false
	for _, o := range s.data.Orders {
		if o.ID == id {
			found = true
			continue
		}
		orders = append(orders, o)
	}
	if !found {
		return fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	s.data.Orders = orders

	slog.Info("order deleted", "order_id", id)
	return s.persistLocked(ctx)
}

// GetOrder returns one order by id.
func (s *Service) GetOrder(id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			order := cloneOrder(s.data.Orders[i])
			return &order, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
}

// ListOrders returns orders, newest order date first. A non-empty
// categoryID restricts the result to that category.
func (s *Service) ListOrders(categoryID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	for _, o := range s.data.Orders {
		if categoryID == "" || o.CategoryID == categoryID {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

// Snapshot returns a copy of the order record set, for export.
func (s *Service) Snapshot() models.OrderData {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, len(s.data.Orders))
	for i, o := range s.data.Orders {
		orders[i] = cloneOrder(o)
	}
	return models.OrderData{
		Categories: append([]models.OrderCategory(nil), s.data.Categories...),
		Templates:  append([]models.OrderItemTemplate(nil), s.data.Templates...),
		Orders:     orders,
	}
}

// Replace swaps the whole order record set, for import.
func (s *Service) Replace(ctx context.Context, data models.OrderData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	return s.persistLocked(ctx)
}
