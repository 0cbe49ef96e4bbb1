package sqlite

import (
	"context"
	"fmt"

	"github.com/kreolabs/boutik/internal/models"
)

// SavePriceList replaces the persisted price-list snapshot.
func (s *SQLiteStore) SavePriceList(ctx context.Context, data *models.PriceListData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM price_list_items"); err != nil {
		return fmt.Errorf("failed to clear price_list_items: %w", err)
	}

	for _, it := range data.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO price_list_items (id, name, unit_price, category, created_at) VALUES (?, ?, ?, ?, ?)",
			it.ID, it.Name, it.UnitPrice, it.Category, formatTime(it.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert price item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadPriceList reads the price-list snapshot.
func (s *SQLiteStore) LoadPriceList(ctx context.Context) (*models.PriceListData, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, unit_price, category, created_at FROM price_list_items")
	if err != nil {
		return nil, fmt.Errorf("failed to query price items: %w", err)
	}
	defer rows.Close()

	data := &models.PriceListData{}
	for rows.Next() {
		var it models.PriceItem
		var createdAt string
		if err := rows.Scan(&it.ID, &it.Name, &it.UnitPrice, &it.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan price item: %w", err)
		}
		if it.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse price item created_at: %w", err)
		}
		data.Items = append(data.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price items: %w", err)
	}
	return data, nil
}

// SaveOverItems replaces the persisted over-items snapshot.
func (s *SQLiteStore) SaveOverItems(ctx context.Context, data *models.OverData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM over_items"); err != nil {
		return fmt.Errorf("failed to clear over_items: %w", err)
	}

	for _, it := range data.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO over_items (id, name, quantity, last_updated_at) VALUES (?, ?, ?, ?)",
			it.ID, it.Name, it.Quantity, formatTime(it.LastUpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert over item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadOverItems reads the over-items snapshot.
func (s *SQLiteStore) LoadOverItems(ctx context.Context) (*models.OverData, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, quantity, last_updated_at FROM over_items")
	if err != nil {
		return nil, fmt.Errorf("failed to query over items: %w", err)
	}
	defer rows.Close()

	data := &models.OverData{}
	for rows.Next() {
		var it models.OverItem
		var updatedAt string
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan over item: %w", err)
		}
		if it.LastUpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse over item last_updated_at: %w", err)
		}
		data.Items = append(data.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over items: %w", err)
	}
	return data, nil
}
