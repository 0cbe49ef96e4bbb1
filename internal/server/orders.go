package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/orders"
)

// OrderHandler serves the category, template and order routes.
type OrderHandler struct {
	orders *orders.Service
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(o *orders.Service) *OrderHandler {
	return &OrderHandler{orders: o}
}

// MountRoutes registers the order routes on the router.
func (h *OrderHandler) MountRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/{id}", h.UpdateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)
	r.Get("/categories/{id}/templates", h.ListTemplates)
	r.Post("/categories/{id}/templates", h.CreateTemplate)
	r.Put("/templates/{id}", h.UpdateTemplate)
	r.Delete("/templates/{id}", h.DeleteTemplate)
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/{id}", h.ShowOrder)
	r.Put("/orders/{id}", h.UpdateOrder)
	r.Delete("/orders/{id}", h.DeleteOrder)
}

// parseOrderDate accepts either a bare date or a full RFC3339 timestamp.
func parseOrderDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid order date %q: %w", value, apperr.ErrValidation)
	}
	return t, nil
}

func toItemInputs(reqs []orderItemRequest) []orders.ItemInput {
	inputs := make([]orders.ItemInput, len(reqs))
	for i, it := range reqs {
		inputs[i] = orders.ItemInput{
			TemplateID:    it.TemplateID,
			Name:          it.Name,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			IsVATNil:      it.IsVATNil,
			IsVATIncluded: it.IsVATIncluded,
			VATPercentage: it.VATPercentage,
			IsAvailable:   it.IsAvailable,
		}
	}
	return inputs
}

func (h *OrderHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.orders.ListCategories())
}

func (h *OrderHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	category, err := h.orders.AddCategory(r.Context(), req.Name, req.VATPercentage)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, category)
}

func (h *OrderHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	category, err := h.orders.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name, req.VATPercentage)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, category)
}

func (h *OrderHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.orders.ListTemplates(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, templates)
}

func (h *OrderHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	template, err := h.orders.AddTemplate(r.Context(), chi.URLParam(r, "id"), orders.TemplateInput{
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		IsVATNil:      req.IsVATNil,
		IsVATIncluded: req.IsVATIncluded,
		VATPercentage: req.VATPercentage,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, template)
}

func (h *OrderHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	template, err := h.orders.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), orders.TemplateInput{
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		IsVATNil:      req.IsVATNil,
		IsVATIncluded: req.IsVATIncluded,
		VATPercentage: req.VATPercentage,
	})
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, template)
}

func (h *OrderHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders returns orders, optionally filtered by ?categoryId=.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.orders.ListOrders(r.URL.Query().Get("categoryId")))
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}
	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		RespondError(w, err)
		return
	}

	order, err := h.orders.AddOrder(r.Context(), req.CategoryID, orderDate, toItemInputs(req.Items))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ShowOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}
	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		RespondError(w, err)
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), chi.URLParam(r, "id"), orderDate, toItemInputs(req.Items))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
