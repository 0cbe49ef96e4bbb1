package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kreolabs/boutik/internal/catalog"
)

// CatalogHandler serves the price-list and over-item routes.
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(c *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// MountRoutes registers the catalog routes on the router.
func (h *CatalogHandler) MountRoutes(r chi.Router) {
	r.Get("/pricelist", h.ListPriceItems)
	r.Post("/pricelist", h.CreatePriceItem)
	r.Put("/pricelist/{id}", h.UpdatePriceItem)
	r.Delete("/pricelist/{id}", h.DeletePriceItem)
	r.Get("/over", h.ListOverItems)
	r.Post("/over", h.CreateOverItem)
	r.Put("/over/{id}", h.SetOverQuantity)
	r.Post("/over/{id}/adjust", h.AdjustOverQuantity)
	r.Delete("/over/{id}", h.DeleteOverItem)
}

// ListPriceItems returns the price list, optionally filtered by ?q=.
func (h *CatalogHandler) ListPriceItems(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		JSON(w, http.StatusOK, h.catalog.SearchPriceItems(q))
		return
	}
	JSON(w, http.StatusOK, h.catalog.ListPriceItems())
}

func (h *CatalogHandler) CreatePriceItem(w http.ResponseWriter, r *http.Request) {
	var req priceItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.catalog.AddPriceItem(r.Context(), req.Name, req.UnitPrice, req.Category)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) UpdatePriceItem(w http.ResponseWriter, r *http.Request) {
	var req priceItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.catalog.UpdatePriceItem(r.Context(), chi.URLParam(r, "id"), req.Name, req.UnitPrice, req.Category)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) DeletePriceItem(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePriceItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListOverItems(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.catalog.ListOverItems())
}

func (h *CatalogHandler) CreateOverItem(w http.ResponseWriter, r *http.Request) {
	var req overItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.catalog.AddOverItem(r.Context(), req.Name, req.Quantity)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) SetOverQuantity(w http.ResponseWriter, r *http.Request) {
	var req overQuantityRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.catalog.SetOverQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) AdjustOverQuantity(w http.ResponseWriter, r *http.Request) {
	var req overAdjustRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.catalog.AdjustOverQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) DeleteOverItem(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteOverItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
