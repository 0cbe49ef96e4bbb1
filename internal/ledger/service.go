// Package ledger implements the client credit ledger: accounts, debt
// transactions, payments and settlement semantics.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/returnables"
	"github.com/kreolabs/boutik/internal/storage"
)

var titleCaser = cases.Title(language.English)

// Service owns the in-memory credit tables and persists them as a snapshot
// after every mutation. The in-memory state is authoritative for the
// session: a persistence failure is returned to the caller but never rolls
// the mutation back.
//
// The mutex guards concurrent HTTP requests within one process. Two
// processes sharing a remote mirror still race last-write-wins, exactly
// like two browser tabs did in the original app.
type Service struct {
	mu    sync.Mutex
	store storage.Store
	data  models.CreditData
	now   func() time.Time
}

// New creates a ledger service over the given store.
func New(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Load hydrates the in-memory state from the store. Call once at startup.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.store.LoadCredit(ctx)
	if err != nil {
		return fmt.Errorf("load credit data: %w", err)
	}
	s.mu.Lock()
	s.data = *data
	s.mu.Unlock()
	return nil
}

// persistLocked writes the current snapshot. Callers must hold s.mu.
func (s *Service) persistLocked(ctx context.Context) error {
	snapshot := s.data
	if err := s.store.SaveCredit(ctx, &snapshot); err != nil {
		slog.Error("persist credit snapshot failed", "error", err)
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (s *Service) clientIndexLocked(clientID string) (int, error) {
	for i := range s.data.Clients {
		if s.data.Clients[i].ID == clientID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("client %s: %w", clientID, apperr.ErrNotFound)
}

func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// AddClient normalizes the name to title case, rejects case-insensitive
// duplicates and allocates the lowest available G### id.
func (s *Service) AddClient(ctx context.Context, name string) (*models.Client, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("client name is required: %w", apperr.ErrValidation)
	}
	display := titleCaser.String(strings.ToLower(trimmed))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Clients {
		if strings.EqualFold(s.data.Clients[i].Name, display) {
			return nil, fmt.Errorf("client %q already exists: %w", display, apperr.ErrDuplicateName)
		}
	}

	now := s.now()
	client := models.Client{
		ID:                s.nextClientIDLocked(),
		Name:              display,
		TotalDebt:         0,
		CreatedAt:         now,
		LastTransactionAt: now,
	}
	s.data.Clients = append(s.data.Clients, client)

	slog.Info("client added", "client_id", client.ID, "name", client.Name)
	return &client, s.persistLocked(ctx)
}

// AddTransaction appends a debt transaction and increments the client's
// total debt. Amount must be finite and non-negative, description non-empty.
func (s *Service) AddTransaction(ctx context.Context, clientID, description string, amount float64) (*models.CreditTransaction, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return nil, fmt.Errorf("transaction description is required: %w", apperr.ErrValidation)
	}
	if !validAmount(amount) || amount < 0 {
		return nil, fmt.Errorf("transaction amount must be a non-negative number: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tx := models.CreditTransaction{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Description: desc,
		Amount:      amount,
		Date:        now,
		Type:        models.TransactionTypeDebt,
	}
	s.data.Transactions = append(s.data.Transactions, tx)

	client := &s.data.Clients[idx]
	client.TotalDebt += amount
	client.LastTransactionAt = now

	return &tx, s.persistLocked(ctx)
}

// AddPartialPayment records a partial payment and reduces the client's debt,
// clamped at zero.
func (s *Service) AddPartialPayment(ctx context.Context, clientID string, amount float64) (*models.PaymentRecord, error) {
	if !validAmount(amount) || amount <= 0 {
		return nil, fmt.Errorf("payment amount must be a positive number: %w", apperr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return nil, err
	}

	payment := models.PaymentRecord{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Amount:   amount,
		Date:     s.now(),
		Type:     models.PaymentTypePartial,
	}
	s.data.Payments = append(s.data.Payments, payment)

	client := &s.data.Clients[idx]
	client.TotalDebt = math.Max(0, client.TotalDebt-amount)

	return &payment, s.persistLocked(ctx)
}

// SettleClient zeroes the client's debt while preserving returnable-item
// history: only debt transactions with amount > 0 that are not
// return-related are removed, and bottlesOwed is kept.
func (s *Service) SettleClient(ctx context.Context, clientID string) (*models.PaymentRecord, error) {
	return s.settle(ctx, clientID, false)
}

// SettleClientWithFullClear zeroes the client's debt, deletes all of the
// client's transactions and resets bottlesOwed. Destructive variant.
func (s *Service) SettleClientWithFullClear(ctx context.Context, clientID string) (*models.PaymentRecord, error) {
	return s.settle(ctx, clientID, true)
}

// returnRelated reports whether a transaction must survive an amount-only
// settlement so the returnable-container history stays intact.
func returnRelated(tx models.CreditTransaction) bool {
	if tx.Amount == 0 {
		return true
	}
	desc := strings.ToLower(tx.Description)
	return strings.Contains(desc, "returned") ||
		strings.Contains(desc, "chopine") ||
		strings.Contains(desc, "bouteille")
}

func (s *Service) settle(ctx context.Context, clientID string, fullClear bool) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return nil, err
	}
	client := &s.data.Clients[idx]

	// A new settlement replaces any prior full record for this client.
	payments := s.data.Payments[:0]
	for _, p := range s.data.Payments {
		if p.ClientID == clientID && p.Type == models.PaymentTypeFull {
			continue
		}
		payments = append(payments, p)
	}
	payment := models.PaymentRecord{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Amount:   client.TotalDebt,
		Date:     s.now(),
		Type:     models.PaymentTypeFull,
	}
	s.data.Payments = append(payments, payment)

	kept := s.data.Transactions[:0]
	for _, tx := range s.data.Transactions {
		if tx.ClientID != clientID {
			kept = append(kept, tx)
			continue
		}
		if !fullClear && returnRelated(tx) {
			kept = append(kept, tx)
		}
	}
	s.data.Transactions = kept

	client.TotalDebt = 0
	if fullClear {
		client.BottlesOwed = models.BottlesOwed{}
	}

	slog.Info("client settled", "client_id", clientID, "amount", payment.Amount, "full_clear", fullClear)
	return &payment, s.persistLocked(ctx)
}

// DeleteClient removes the client and cascades to its transactions and
// payments. The numeric id suffix becomes reusable.
func (s *Service) DeleteClient(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return err
	}
	s.data.Clients = append(s.data.Clients[:idx], s.data.Clients[idx+1:]...)

	txs := s.data.Transactions[:0]
	for _, tx := range s.data.Transactions {
		if tx.ClientID != clientID {
			txs = append(txs, tx)
		}
	}
	s.data.Transactions = txs

	payments := s.data.Payments[:0]
	for _, p := range s.data.Payments {
		if p.ClientID != clientID {
			payments = append(payments, p)
		}
	}
	s.data.Payments = payments

	slog.Info("client deleted", "client_id", clientID)
	return s.persistLocked(ctx)
}

// UpdateBottlesOwed replaces the client's returnable-container tally.
func (s *Service) UpdateBottlesOwed(ctx context.Context, clientID string, owed models.BottlesOwed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return err
	}
	s.data.Clients[idx].BottlesOwed = owed
	return s.persistLocked(ctx)
}

// RecordReturn appends a zero-amount "returned: ..." transaction so the
// returnables extractor subtracts the containers from the outstanding tally.
func (s *Service) RecordReturn(ctx context.Context, clientID, description string) (*models.CreditTransaction, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return nil, fmt.Errorf("return description is required: %w", apperr.ErrValidation)
	}
	if !strings.Contains(strings.ToLower(desc), "returned") {
		desc = "returned: " + desc
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tx := models.CreditTransaction{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Description: desc,
		Amount:      0,
		Date:        now,
		Type:        models.TransactionTypeDebt,
	}
	s.data.Transactions = append(s.data.Transactions, tx)
	s.data.Clients[idx].LastTransactionAt = now

	return &tx, s.persistLocked(ctx)
}

// ListClients returns all clients ordered by recency (most recent
// transaction first).
func (s *Service) ListClients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := make([]models.Client, len(s.data.Clients))
	copy(clients, s.data.Clients)
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].LastTransactionAt.After(clients[j].LastTransactionAt)
	})
	return clients
}

// GetClient returns one client by id.
func (s *Service) GetClient(clientID string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.clientIndexLocked(clientID)
	if err != nil {
		return nil, err
	}
	client := s.data.Clients[idx]
	return &client, nil
}

// TotalDebt returns the client's current derived debt.
func (s *Service) TotalDebt(clientID string) (float64, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return 0, err
	}
	return client.TotalDebt, nil
}

// Transactions returns the client's debt transactions in insertion order.
func (s *Service) Transactions(clientID string) ([]models.CreditTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.clientIndexLocked(clientID); err != nil {
		return nil, err
	}
	var txs []models.CreditTransaction
	for _, tx := range s.data.Transactions {
		if tx.ClientID == clientID {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// Payments returns the client's payment records in insertion order.
func (s *Service) Payments(clientID string) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.clientIndexLocked(clientID); err != nil {
		return nil, err
	}
	var payments []models.PaymentRecord
	for _, p := range s.data.Payments {
		if p.ClientID == clientID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// Outstanding tallies the client's outstanding returnable containers from
// transaction descriptions.
func (s *Service) Outstanding(clientID string) (map[string]int, error) {
	txs, err := s.Transactions(clientID)
	if err != nil {
		return nil, err
	}
	return returnables.Outstanding(toReturnable(txs)), nil
}

// HasOverdue reports whether the client holds containers issued three weeks
// ago or more.
func (s *Service) HasOverdue(clientID string) (bool, error) {
	txs, err := s.Transactions(clientID)
	if err != nil {
		return false, err
	}
	return returnables.HasOverdue(toReturnable(txs), s.now()), nil
}

func toReturnable(txs []models.CreditTransaction) []returnables.Transaction {
	out := make([]returnables.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = returnables.Transaction{
			Description: tx.Description,
			Amount:      tx.Amount,
			Date:        tx.Date,
		}
	}
	return out
}

// Snapshot returns a copy of the credit record set, for export.
func (s *Service) Snapshot() models.CreditData {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := models.CreditData{
		Clients:      append([]models.Client(nil), s.data.Clients...),
		Transactions: append([]models.CreditTransaction(nil), s.data.Transactions...),
		Payments:     append([]models.PaymentRecord(nil), s.data.Payments...),
	}
	return snapshot
}

// Replace swaps the whole credit record set, for import.
func (s *Service) Replace(ctx context.Context, data models.CreditData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	return s.persistLocked(ctx)
}
