package pricing

import (
	"math"
	"testing"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name          string
		quantity      float64
		unitPrice     float64
		vatNil        bool
		vatIncluded   bool
		vatPercentage float64
		wantVAT       float64
		wantTotal     float64
	}{
		{
			name:          "percentage VAT added on top",
			quantity:      2,
			unitPrice:     100,
			vatPercentage: 15,
			wantVAT:       30,
			wantTotal:     230,
		},
		{
			name:          "VAT included means no extra tax",
			quantity:      2,
			unitPrice:     100,
			vatIncluded:   true,
			vatPercentage: 15,
			wantVAT:       0,
			wantTotal:     200,
		},
		{
			name:          "VAT nil is exempt regardless of percentage",
			quantity:      3,
			unitPrice:     50,
			vatNil:        true,
			vatPercentage: 15,
			wantVAT:       0,
			wantTotal:     150,
		},
		{
			name:      "zero percentage adds nothing",
			quantity:  4,
			unitPrice: 25,
			wantVAT:   0,
			wantTotal: 100,
		},
		{
			name:          "zero quantity prices to zero",
			quantity:      0,
			unitPrice:     100,
			vatPercentage: 15,
			wantVAT:       0,
			wantTotal:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.quantity, tt.unitPrice, tt.vatNil, tt.vatIncluded, tt.vatPercentage)
			if math.Abs(got.VATAmount-tt.wantVAT) > 0.001 {
				t.Errorf("VATAmount = %v, want %v", got.VATAmount, tt.wantVAT)
			}
			if math.Abs(got.TotalPrice-tt.wantTotal) > 0.001 {
				t.Errorf("TotalPrice = %v, want %v", got.TotalPrice, tt.wantTotal)
			}
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	first := Derive(2, 100, false, false, 15)
	second := Derive(2, 100, false, false, 15)
	if first != second {
		t.Errorf("same inputs derived differently: %+v vs %+v", first, second)
	}
}

func TestDeriveItemUnavailable(t *testing.T) {
	it := Item{Quantity: 2, UnitPrice: 100, VATPercentage: 15, Available: false}
	got := DeriveItem(it)
	if got.VATAmount != 0 || got.TotalPrice != 0 {
		t.Errorf("unavailable item priced to %+v, want zero", got)
	}
}

func TestTotal(t *testing.T) {
	items := []Item{
		{Quantity: 2, UnitPrice: 100, VATPercentage: 15, Available: true},  // 230
		{Quantity: 1, UnitPrice: 50, VATIncluded: true, Available: true},   // 50
		{Quantity: 3, UnitPrice: 10, VATNil: true, Available: true},        // 30
		{Quantity: 5, UnitPrice: 100, VATPercentage: 15, Available: false}, // struck through
	}
	if got, want := Total(items), 310.0; math.Abs(got-want) > 0.001 {
		t.Errorf("Total = %v, want %v", got, want)
	}
}

func TestTotalEmpty(t *testing.T) {
	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v, want 0", got)
	}
}
