package models

import "time"

// PriceItem is one entry of the standalone price list.
type PriceItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OverItem tracks surplus ("over") stock by name and quantity.
type OverItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PriceListData is the price-list module's persisted record set.
type PriceListData struct {
	Items []PriceItem `json:"items"`
}

// OverData is the over module's persisted record set.
type OverData struct {
	Items []OverItem `json:"items"`
}
