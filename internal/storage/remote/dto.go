package remote

import (
	"time"

	"github.com/kreolabs/boutik/internal/models"
)

// Wire types map the domain models to the remote relational store's
// snake_case column names.

type bottlesWire struct {
	Beer     int `json:"beer"`
	Guinness int `json:"guinness"`
	Malta    int `json:"malta"`
	Coca     int `json:"coca"`
	Chopines int `json:"chopines"`
}

type clientWire struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	TotalDebt         float64     `json:"total_debt"`
	CreatedAt         time.Time   `json:"created_at"`
	LastTransactionAt time.Time   `json:"last_transaction_at"`
	BottlesOwed       bottlesWire `json:"bottles_owed"`
}

type transactionWire struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
}

type paymentWire struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
}

type creditWire struct {
	Clients      []clientWire      `json:"clients"`
	Transactions []transactionWire `json:"transactions"`
	Payments     []paymentWire     `json:"payments"`
}

func creditToWire(data *models.CreditData) *creditWire {
	wire := &creditWire{}
	for _, c := range data.Clients {
		wire.Clients = append(wire.Clients, clientWire{
			ID:                c.ID,
			Name:              c.Name,
			TotalDebt:         c.TotalDebt,
			CreatedAt:         c.CreatedAt,
			LastTransactionAt: c.LastTransactionAt,
			BottlesOwed:       bottlesWire(c.BottlesOwed),
		})
	}
	for _, t := range data.Transactions {
		wire.Transactions = append(wire.Transactions, transactionWire(t))
	}
	for _, p := range data.Payments {
		wire.Payments = append(wire.Payments, paymentWire(p))
	}
	return wire
}

func (w *creditWire) toModel() *models.CreditData {
	data := &models.CreditData{}
	for _, c := range w.Clients {
		data.Clients = append(data.Clients, models.Client{
			ID:                c.ID,
			Name:              c.Name,
			TotalDebt:         c.TotalDebt,
			CreatedAt:         c.CreatedAt,
			LastTransactionAt: c.LastTransactionAt,
			BottlesOwed:       models.BottlesOwed(c.BottlesOwed),
		})
	}
	for _, t := range w.Transactions {
		data.Transactions = append(data.Transactions, models.CreditTransaction(t))
	}
	for _, p := range w.Payments {
		data.Payments = append(data.Payments, models.PaymentRecord(p))
	}
	return data
}

type categoryWire struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	VATPercentage float64   `json:"vat_percentage"`
	CreatedAt     time.Time `json:"created_at"`
}

type templateWire struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	Name          string    `json:"name"`
	UnitPrice     float64   `json:"unit_price"`
	IsVATNil      bool      `json:"is_vat_nil"`
	IsVATIncluded bool      `json:"is_vat_included"`
	VATPercentage float64   `json:"vat_percentage"`
	CreatedAt     time.Time `json:"created_at"`
}

type orderItemWire struct {
	ID            string  `json:"id"`
	TemplateID    string  `json:"template_id"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	IsVATNil      bool    `json:"is_vat_nil"`
	IsVATIncluded bool    `json:"is_vat_included"`
	VATPercentage float64 `json:"vat_percentage"`
	VATAmount     float64 `json:"vat_amount"`
	TotalPrice    float64 `json:"total_price"`
	IsAvailable   bool    `json:"is_available"`
}

type orderRecordWire struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	OrderDate    time.Time       `json:"order_date"`
	Items        []orderItemWire `json:"items"`
	TotalCost    float64         `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	LastEditedAt *time.Time      `json:"last_edited_at,omitempty"`
}

type orderWire struct {
	Categories []categoryWire    `json:"categories"`
	Templates  []templateWire    `json:"item_templates"`
	Orders     []orderRecordWire `json:"orders"`
}

func ordersToWire(data *models.OrderData) *orderWire {
	wire := &orderWire{}
	for _, c := range data.Categories {
		wire.Categories = append(wire.Categories, categoryWire(c))
	}
	for _, t := range data.Templates {
		wire.Templates = append(wire.Templates, templateWire(t))
	}
	for _, o := range data.Orders {
		rec := orderRecordWire{
			ID:           o.ID,
			CategoryID:   o.CategoryID,
			OrderDate:    o.OrderDate,
			TotalCost:    o.TotalCost,
			CreatedAt:    o.CreatedAt,
			LastEditedAt: o.LastEditedAt,
		}
		for _, it := range o.Items {
			rec.Items = append(rec.Items, orderItemWire(it))
		}
		wire.Orders = append(wire.Orders, rec)
	}
	return wire
}

func (w *orderWire) toModel() *models.OrderData {
	data := &models.OrderData{}
	for _, c := range w.Categories {
		data.Categories = append(data.Categories, models.OrderCategory(c))
	}
	for _, t := range w.Templates {
		data.Templates = append(data.Templates, models.OrderItemTemplate(t))
	}
	for _, o := range w.Orders {
		rec := models.Order{
			ID:           o.ID,
			CategoryID:   o.CategoryID,
			OrderDate:    o.OrderDate,
			TotalCost:    o.TotalCost,
			CreatedAt:    o.CreatedAt,
			LastEditedAt: o.LastEditedAt,
		}
		for _, it := range o.Items {
			rec.Items = append(rec.Items, models.OrderItem(it))
		}
		data.Orders = append(data.Orders, rec)
	}
	return data
}

type priceItemWire struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type priceListWire struct {
	Items []priceItemWire `json:"items"`
}

func priceListToWire(data *models.PriceListData) *priceListWire {
	wire := &priceListWire{}
	for _, it := range data.Items {
		wire.Items = append(wire.Items, priceItemWire(it))
	}
	return wire
}

func (w *priceListWire) toModel() *models.PriceListData {
	data := &models.PriceListData{}
	for _, it := range w.Items {
		data.Items = append(data.Items, models.PriceItem(it))
	}
	return data
}

type overItemWire struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

type overWire struct {
	Items []overItemWire `json:"items"`
}

func overToWire(data *models.OverData) *overWire {
	wire := &overWire{}
	for _, it := range data.Items {
		wire.Items = append(wire.Items, overItemWire(it))
	}
	return wire
}

func (w *overWire) toModel() *models.OverData {
	data := &models.OverData{}
	for _, it := range w.Items {
		data.Items = append(data.Items, models.OverItem(it))
	}
	return data
}
