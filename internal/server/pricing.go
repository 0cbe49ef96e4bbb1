package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kreolabs/boutik/internal/pricing"
)

// PricingHandler serves the stateless quick-add derivation, using the same
// rule that prices templates and order lines.
type PricingHandler struct{}

// NewPricingHandler creates the pricing handler.
func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// MountRoutes registers the pricing routes on the router.
func (h *PricingHandler) MountRoutes(r chi.Router) {
	r.Post("/pricing/derive", h.Derive)
}

type deriveRequest struct {
	Quantity      float64 `json:"quantity" validate:"gte=0"`
	UnitPrice     float64 `json:"unitPrice" validate:"gte=0"`
	IsVATNil      bool    `json:"isVatNil"`
	IsVATIncluded bool    `json:"isVatIncluded"`
	VATPercentage float64 `json:"vatPercentage" validate:"gte=0,lte=100"`
}

type deriveResponse struct {
	VATAmount  float64 `json:"vatAmount"`
	TotalPrice float64 `json:"totalPrice"`
}

// Derive computes VAT amount and total for an ad-hoc line.
func (h *PricingHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req deriveRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	line := pricing.Derive(req.Quantity, req.UnitPrice, req.IsVATNil, req.IsVATIncluded, req.VATPercentage)
	JSON(w, http.StatusOK, deriveResponse{VATAmount: line.VATAmount, TotalPrice: line.TotalPrice})
}
