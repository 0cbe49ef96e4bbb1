package models

import "time"

// Transaction and payment type discriminators, persisted verbatim.
const (
	TransactionTypeDebt = "debt"

	PaymentTypePartial = "partial"
	PaymentTypeFull    = "full"
)

// Client represents one credit-ledger account.
type Client struct {
	// ID uses the legacy sequential scheme "G###". Once a client is
	// deleted its numeric suffix becomes eligible for reuse.
	ID string `json:"id"`

	// Name is stored title-cased and is unique case-insensitively.
	Name string `json:"name"`

	// TotalDebt is derived: sum of unsettled debt transaction amounts
	// minus payments, clamped at zero. Every mutating operation keeps it
	// consistent.
	TotalDebt float64 `json:"totalDebt"`

	CreatedAt time.Time `json:"createdAt"`

	// LastTransactionAt drives the recency ordering of client lists.
	LastTransactionAt time.Time `json:"lastTransactionAt"`

	// BottlesOwed tracks returnable containers lent to the client.
	BottlesOwed BottlesOwed `json:"bottlesOwed"`
}

// BottlesOwed is the per-kind tally of returnable containers.
type BottlesOwed struct {
	Beer     int `json:"beer"`
	Guinness int `json:"guinness"`
	Malta    int `json:"malta"`
	Coca     int `json:"coca"`
	Chopines int `json:"chopines"`
}

// IsZero reports whether no containers are owed.
func (b BottlesOwed) IsZero() bool {
	return b == BottlesOwed{}
}

// CreditTransaction records one debt entry against a client.
// Amount is validated (finite, >= 0) before creation, not by the type.
type CreditTransaction struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
}

// PaymentRecord records a partial payment or a full settlement.
// At most one "full" record exists per client: issuing a new settlement
// replaces any prior one.
type PaymentRecord struct {
	ID       string    `json:"id"`
	ClientID string    `json:"clientId"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
}

// CreditData is the credit module's persisted record set.
type CreditData struct {
	Clients      []Client            `json:"clients"`
	Transactions []CreditTransaction `json:"transactions"`
	Payments     []PaymentRecord     `json:"payments"`
}
