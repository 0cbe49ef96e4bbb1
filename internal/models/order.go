package models

import "time"

// OrderCategory groups item templates and orders. Names are unique
// case-insensitively; VATPercentage is the category default (0-100).
type OrderCategory struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	VATPercentage float64   `json:"vatPercentage"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderItemTemplate is a reusable priced item within a category.
//
// IsVATNil and IsVATIncluded are mutually exclusive; setting one clears the
// other, and IsVATNil forces VATPercentage to zero.
type OrderItemTemplate struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"categoryId"`
	Name          string    `json:"name"`
	UnitPrice     float64   `json:"unitPrice"`
	IsVATNil      bool      `json:"isVatNil"`
	IsVATIncluded bool      `json:"isVatIncluded"`
	VATPercentage float64   `json:"vatPercentage"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderItem is a line item inside an Order. VATAmount and TotalPrice are
// derived and recomputed on every quantity/price/availability change.
// Unavailable items stay in the list (so toggling availability back
// restores them) but contribute zero to the order total.
type OrderItem struct {
	ID            string  `json:"id"`
	TemplateID    string  `json:"templateId"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	IsVATNil      bool    `json:"isVatNil"`
	IsVATIncluded bool    `json:"isVatIncluded"`
	VATPercentage float64 `json:"vatPercentage"`
	VATAmount     float64 `json:"vatAmount"`
	TotalPrice    float64 `json:"totalPrice"`
	IsAvailable   bool    `json:"isAvailable"`
}

// Order holds the line items for one category on one calendar day.
// At most one order exists per (CategoryID, OrderDate day).
type Order struct {
	ID           string      `json:"id"`
	CategoryID   string      `json:"categoryId"`
	OrderDate    time.Time   `json:"orderDate"`
	Items        []OrderItem `json:"items"`
	TotalCost    float64     `json:"totalCost"`
	CreatedAt    time.Time   `json:"createdAt"`
	LastEditedAt *time.Time  `json:"lastEditedAt,omitempty"`
}

// OrderData is the order module's persisted record set.
type OrderData struct {
	Categories []OrderCategory     `json:"categories"`
	Templates  []OrderItemTemplate `json:"itemTemplates"`
	Orders     []Order             `json:"orders"`
}
