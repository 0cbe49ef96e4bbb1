package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kreolabs/boutik/internal/ledger"
	"github.com/kreolabs/boutik/internal/models"
)

// ClientHandler serves the credit ledger routes.
type ClientHandler struct {
	ledger *ledger.Service
}

// NewClientHandler creates the ledger handler.
func NewClientHandler(l *ledger.Service) *ClientHandler {
	return &ClientHandler{ledger: l}
}

// MountRoutes registers the client routes on the router.
func (h *ClientHandler) MountRoutes(r chi.Router) {
	r.Get("/clients", h.List)
	r.Post("/clients", h.Create)
	r.Get("/clients/{id}", h.Show)
	r.Delete("/clients/{id}", h.Delete)
	r.Get("/clients/{id}/transactions", h.Transactions)
	r.Post("/clients/{id}/transactions", h.AddTransaction)
	r.Get("/clients/{id}/payments", h.Payments)
	r.Post("/clients/{id}/payments", h.AddPartialPayment)
	r.Post("/clients/{id}/settle", h.Settle)
	r.Put("/clients/{id}/bottles", h.UpdateBottlesOwed)
	r.Post("/clients/{id}/returns", h.RecordReturn)
	r.Get("/clients/{id}/returnables", h.Returnables)
}

// List returns every client, most recent activity first. A non-empty ?q=
// filters by id or name.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		JSON(w, http.StatusOK, h.ledger.SearchClients(q))
		return
	}
	JSON(w, http.StatusOK, h.ledger.ListClients())
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addClientRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	client, err := h.ledger.AddClient(r.Context(), req.Name)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Show(w http.ResponseWriter, r *http.Request) {
	client, err := h.ledger.GetClient(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.ledger.Transactions(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, txns)
}

func (h *ClientHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	txn, err := h.ledger.AddTransaction(r.Context(), chi.URLParam(r, "id"), req.Description, req.Amount)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, txn)
}

func (h *ClientHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.ledger.Payments(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, payments)
}

func (h *ClientHandler) AddPartialPayment(w http.ResponseWriter, r *http.Request) {
	var req partialPaymentRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	payment, err := h.ledger.AddPartialPayment(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, payment)
}

// Settle records a full settlement. With fullClear the client's
// return-related history and bottle counters are wiped as well.
func (h *ClientHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	var (
		payment *models.PaymentRecord
		err     error
	)
	if req.FullClear {
		payment, err = h.ledger.SettleClientWithFullClear(r.Context(), id)
	} else {
		payment, err = h.ledger.SettleClient(r.Context(), id)
	}
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, payment)
}

func (h *ClientHandler) UpdateBottlesOwed(w http.ResponseWriter, r *http.Request) {
	var req bottlesOwedRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	owed := models.BottlesOwed{
		Beer:     req.Beer,
		Guinness: req.Guinness,
		Malta:    req.Malta,
		Coca:     req.Coca,
		Chopines: req.Chopines,
	}
	if err := h.ledger.UpdateBottlesOwed(r.Context(), chi.URLParam(r, "id"), owed); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) RecordReturn(w http.ResponseWriter, r *http.Request) {
	var req recordReturnRequest
	if err := DecodeJSON(r, &req); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := checkRequest(req); err != nil {
		RespondError(w, err)
		return
	}

	txn, err := h.ledger.RecordReturn(r.Context(), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusCreated, txn)
}

// Returnables reports the outstanding returnable items extracted from the
// client's transaction history, plus the overdue flag.
func (h *ClientHandler) Returnables(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outstanding, err := h.ledger.Outstanding(id)
	if err != nil {
		RespondError(w, err)
		return
	}
	overdue, err := h.ledger.HasOverdue(id)
	if err != nil {
		RespondError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"outstanding": outstanding,
		"hasOverdue":  overdue,
	})
}
