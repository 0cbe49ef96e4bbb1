package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/kreolabs/boutik/internal/models"
)

// Timestamps are stored as RFC3339 text so the database stays readable and
// matches the ISO8601 shape of the persisted JSON.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}

// SaveCredit replaces the persisted credit module snapshot.
func (s *SQLiteStore) SaveCredit(ctx context.Context, data *models.CreditData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"clients", "credit_transactions", "payments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range data.Clients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, total_debt, created_at, last_transaction_at,
			 bottles_beer, bottles_guinness, bottles_malta, bottles_coca, bottles_chopines)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.TotalDebt, formatTime(c.CreatedAt), formatTime(c.LastTransactionAt),
			c.BottlesOwed.Beer, c.BottlesOwed.Guinness, c.BottlesOwed.Malta,
			c.BottlesOwed.Coca, c.BottlesOwed.Chopines,
		)
		if err != nil {
			return fmt.Errorf("failed to insert client: %w", err)
		}
	}

	for _, t := range data.Transactions {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO credit_transactions (id, client_id, description, amount, date, type) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.ClientID, t.Description, t.Amount, formatTime(t.Date), t.Type,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	for _, p := range data.Payments {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO payments (id, client_id, amount, date, type) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.ClientID, p.Amount, formatTime(p.Date), p.Type,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadCredit reads the credit module snapshot. An empty database yields an
// empty record set, not an error.
func (s *SQLiteStore) LoadCredit(ctx context.Context) (*models.CreditData, error) {
	data := &models.CreditData{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, total_debt, created_at, last_transaction_at,
		 bottles_beer, bottles_guinness, bottles_malta, bottles_coca, bottles_chopines
		 FROM clients`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Client
		var createdAt, lastTxAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalDebt, &createdAt, &lastTxAt,
			&c.BottlesOwed.Beer, &c.BottlesOwed.Guinness, &c.BottlesOwed.Malta,
			&c.BottlesOwed.Coca, &c.BottlesOwed.Chopines); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse client created_at: %w", err)
		}
		if c.LastTransactionAt, err = parseTime(lastTxAt); err != nil {
			return nil, fmt.Errorf("failed to parse client last_transaction_at: %w", err)
		}
		data.Clients = append(data.Clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx,
		"SELECT id, client_id, description, amount, date, type FROM credit_transactions",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer txRows.Close()

	for txRows.Next() {
		var t models.CreditTransaction
		var date string
		if err := txRows.Scan(&t.ID, &t.ClientID, &t.Description, &t.Amount, &date, &t.Type); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("failed to parse transaction date: %w", err)
		}
		data.Transactions = append(data.Transactions, t)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	payRows, err := s.db.QueryContext(ctx,
		"SELECT id, client_id, amount, date, type FROM payments",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var p models.PaymentRecord
		var date string
		if err := payRows.Scan(&p.ID, &p.ClientID, &p.Amount, &date, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("failed to parse payment date: %w", err)
		}
		data.Payments = append(data.Payments, p)
	}
	if err := payRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return data, nil
}
