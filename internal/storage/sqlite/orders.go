package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kreolabs/boutik/internal/models"
)

// SaveOrders replaces the persisted order module snapshot.
func (s *SQLiteStore) SaveOrders(ctx context.Context, data *models.OrderData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"order_items", "orders", "order_item_templates", "order_categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range data.Categories {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_categories (id, name, vat_percentage, created_at) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, c.VATPercentage, formatTime(c.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
	}

	for _, t := range data.Templates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_item_templates (id, category_id, name, unit_price, is_vat_nil, is_vat_included, vat_percentage, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.CategoryID, t.Name, t.UnitPrice, t.IsVATNil, t.IsVATIncluded, t.VATPercentage, formatTime(t.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert template: %w", err)
		}
	}

	for _, o := range data.Orders {
		var lastEdited any
		if o.LastEditedAt != nil {
			lastEdited = formatTime(*o.LastEditedAt)
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO orders (id, category_id, order_date, total_cost, created_at, last_edited_at) VALUES (?, ?, ?, ?, ?, ?)",
			o.ID, o.CategoryID, formatTime(o.OrderDate), o.TotalCost, formatTime(o.CreatedAt), lastEdited,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, it := range o.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (id, order_id, template_id, name, quantity, unit_price,
				 is_vat_nil, is_vat_included, vat_percentage, vat_amount, total_price, is_available)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				it.ID, o.ID, it.TemplateID, it.Name, it.Quantity, it.UnitPrice,
				it.IsVATNil, it.IsVATIncluded, it.VATPercentage, it.VATAmount, it.TotalPrice, it.IsAvailable,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadOrders reads the order module snapshot.
func (s *SQLiteStore) LoadOrders(ctx context.Context) (*models.OrderData, error) {
	data := &models.OrderData{}

	catRows, err := s.db.QueryContext(ctx, "SELECT id, name, vat_percentage, created_at FROM order_categories")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var c models.OrderCategory
		var createdAt string
		if err := catRows.Scan(&c.ID, &c.Name, &c.VATPercentage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse category created_at: %w", err)
		}
		data.Categories = append(data.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	tmplRows, err := s.db.QueryContext(ctx,
		"SELECT id, category_id, name, unit_price, is_vat_nil, is_vat_included, vat_percentage, created_at FROM order_item_templates",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer tmplRows.Close()

	for tmplRows.Next() {
		var t models.OrderItemTemplate
		var createdAt string
		if err := tmplRows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.UnitPrice,
			&t.IsVATNil, &t.IsVATIncluded, &t.VATPercentage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse template created_at: %w", err)
		}
		data.Templates = append(data.Templates, t)
	}
	if err := tmplRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}

	orderRows, err := s.db.QueryContext(ctx,
		"SELECT id, category_id, order_date, total_cost, created_at, last_edited_at FROM orders",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer orderRows.Close()

	for orderRows.Next() {
		var o models.Order
		var orderDate, createdAt string
		var lastEdited sql.NullString
		if err := orderRows.Scan(&o.ID, &o.CategoryID, &orderDate, &o.TotalCost, &createdAt, &lastEdited); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if o.OrderDate, err = parseTime(orderDate); err != nil {
			return nil, fmt.Errorf("failed to parse order_date: %w", err)
		}
		if o.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse order created_at: %w", err)
		}
		if lastEdited.Valid {
			t, err := parseTime(lastEdited.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse order last_edited_at: %w", err)
			}
			o.LastEditedAt = &t
		}
		data.Orders = append(data.Orders, o)
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range data.Orders {
		o := &data.Orders[i]
		itemRows, err := s.db.QueryContext(ctx,
			`SELECT id, template_id, name, quantity, unit_price, is_vat_nil, is_vat_included,
			 vat_percentage, vat_amount, total_price, is_available
			 FROM order_items WHERE order_id = ?`, o.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query order items: %w", err)
		}

		for itemRows.Next() {
			var it models.OrderItem
			if err := itemRows.Scan(&it.ID, &it.TemplateID, &it.Name, &it.Quantity, &it.UnitPrice,
				&it.IsVATNil, &it.IsVATIncluded, &it.VATPercentage, &it.VATAmount, &it.TotalPrice,
				&it.IsAvailable); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("failed to scan order item: %w", err)
			}
			o.Items = append(o.Items, it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("failed to iterate order items: %w", err)
		}
		itemRows.Close()
	}

	return data, nil
}
