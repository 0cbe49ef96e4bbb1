package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
)

// TemplateInput carries the caller-supplied template fields.
type TemplateInput struct {
	Name          string
	UnitPrice     float64
	IsVATNil      bool
	IsVATIncluded bool
	VATPercentage float64
}

// resolveVATFlags enforces the VAT-nil / VAT-included mutual exclusion.
// When both flags arrive set, the one newly turned on relative to the
// previous state wins; on creation VAT-nil wins. VAT-nil always forces the
// percentage to zero.
func resolveVATFlags(prevNil, prevIncluded, reqNil, reqIncluded bool) (vatNil, vatIncluded bool) {
	if reqNil && reqIncluded {
		if !prevNil {
			return true, false
		}
		if !prevIncluded {
			return false, true
		}
		return true, false
	}
	return reqNil, reqIncluded
}

func (s *Service) validateTemplateInput(in TemplateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("template name is required: %w", apperr.ErrValidation)
	}
	if in.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative: %w", apperr.ErrValidation)
	}
	if !validVATPercentage(in.VATPercentage) {
		return fmt.Errorf("vat percentage must be between 0 and 100: %w", apperr.ErrValidation)
	}
	return nil
}

func (s *Service) templateLocked(id string) (*models.OrderItemTemplate, error) {
	for i := range s.data.Templates {
		if s.data.Templates[i].ID == id {
			return &s.data.Templates[i], nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", id, apperr.ErrNotFound)
}

// AddTemplate creates an item template inside a category. Template names are
// unique within their category, case-insensitively.
func (s *Service) AddTemplate(ctx context.Context, categoryID string, in TemplateInput) (*models.OrderItemTemplate, error) {
	if err := s.validateTemplateInput(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.categoryLocked(categoryID); err != nil {
		return nil, err
	}
	for i := range s.data.Templates {
		t := &s.data.Templates[i]
		if t.CategoryID == categoryID && strings.EqualFold(t.Name, name) {
			return nil, fmt.Errorf("template %q already exists in this category: %w", name, apperr.ErrDuplicateName)
		}
	}

	vatNil, vatIncluded := resolveVATFlags(false, false, in.IsVATNil, in.IsVATIncluded)
	pct := in.VATPercentage
	if vatNil {
		pct = 0
	}

	template := models.OrderItemTemplate{
		ID:            uuid.New().String(),
		CategoryID:    categoryID,
		Name:          name,
		UnitPrice:     in.UnitPrice,
		IsVATNil:      vatNil,
		IsVATIncluded: vatIncluded,
		VATPercentage: pct,
		CreatedAt:     s.now(),
	}
	s.data.Templates = append(s.data.Templates, template)

	slog.Info("template added", "template_id", template.ID, "category_id", categoryID, "name", name)
	return &template, s.persistLocked(ctx)
}

// UpdateTemplate modifies a template, re-resolving the VAT flag exclusion
// against the previous state.
func (s *Service) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (*models.OrderItemTemplate, error) {
	if err := s.validateTemplateInput(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	template, err := s.templateLocked(id)
	if err != nil {
		return nil, err
	}
	for i := range s.data.Templates {
		t := &s.data.Templates[i]
		if t.ID != id && t.CategoryID == template.CategoryID && strings.EqualFold(t.Name, name) {
			return nil, fmt.Errorf("template %q already exists in this category: %w", name, apperr.ErrDuplicateName)
		}
	}

	vatNil, vatIncluded := resolveVATFlags(template.IsVATNil, template.IsVATIncluded, in.IsVATNil, in.IsVATIncluded)
	pct := in.VATPercentage
	if vatNil {
		pct = 0
	}

	template.Name = name
	template.UnitPrice = in.UnitPrice
	template.IsVATNil = vatNil
	template.IsVATIncluded = vatIncluded
	template.VATPercentage = pct

	updated := *template
	return &updated, s.persistLocked(ctx)
}

// DeleteTemplate removes a template, strips matching line items from every
// order that referenced it and recomputes each affected order's total.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.templateLocked(id); err != nil {
		return err
	}

	templates := s.data.Templates[:0]
	for _, t := range s.data.Templates {
		if t.ID != id {
			templates = append(templates, t)
		}
	}
	s.data.Templates = templates

	for i := range s.data.Orders {
		order := &s.data.Orders[i]
		// Filter into a fresh slice: order copies handed out by the read
		// accessors share the old backing array and must not see this.
		items := make([]models.OrderItem, 0, len(order.Items))
		stripped := false
		for _, it := range order.Items {
			if it.TemplateID == id {
				stripped = true
				continue
			}
			items = append(items, it)
		}
		if stripped {
			order.Items = items
			order.TotalCost = orderTotal(order.Items)
		}
	}

	slog.Info("template deleted", "template_id", id)
	return s.persistLocked(ctx)
}

// ListTemplates returns the templates of one category in insertion order.
func (s *Service) ListTemplates(categoryID string) ([]models.OrderItemTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.categoryLocked(categoryID); err != nil {
		return nil, err
	}
	var templates []models.OrderItemTemplate
	for _, t := range s.data.Templates {
		if t.CategoryID == categoryID {
			templates = append(templates, t)
		}
	}
	return templates, nil
}
