// Package pricing computes per-line VAT amounts and totals for orders.
//
// The same derivation is applied everywhere a priced line appears: item
// templates, order line items and the quick-add calculator. Keeping one
// function for it is the core contract of the module.
package pricing

// Item describes a line used for pricing calculation.
type Item struct {
	Quantity      float64
	UnitPrice     float64
	VATNil        bool
	VATIncluded   bool
	VATPercentage float64
	Available     bool
}

// Line is the derived result for one item.
type Line struct {
	VATAmount  float64
	TotalPrice float64
}

// Derive computes the VAT amount and total for one line.
//
// VAT-included prices already contain tax and VAT-nil items are exempt, so
// both contribute zero VAT on top of the subtotal. Otherwise VAT is added
// as a percentage of quantity * unit price.
func Derive(quantity, unitPrice float64, vatNil, vatIncluded bool, vatPercentage float64) Line {
	subtotal := quantity * unitPrice
	if vatIncluded || vatNil {
		return Line{VATAmount: 0, TotalPrice: subtotal}
	}
	vat := subtotal * (vatPercentage / 100)
	return Line{VATAmount: vat, TotalPrice: subtotal + vat}
}

// DeriveItem applies Derive to an item, honoring availability: unavailable
// items keep their place in the list but price to zero for aggregation.
func DeriveItem(it Item) Line {
	if !it.Available {
		return Line{}
	}
	return Derive(it.Quantity, it.UnitPrice, it.VATNil, it.VATIncluded, it.VATPercentage)
}

// Total sums the derived totals over available items.
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += DeriveItem(it).TotalPrice
	}
	return total
}
