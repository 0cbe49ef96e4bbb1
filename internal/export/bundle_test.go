package export

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/catalog"
	"github.com/kreolabs/boutik/internal/ledger"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/orders"
	"github.com/kreolabs/boutik/internal/storage/memory"
)

func newExporter(t *testing.T) (*Exporter, *ledger.Service, *catalog.Service) {
	t.Helper()
	store := memory.New()
	l := ledger.New(store)
	o := orders.New(store)
	c := catalog.New(store)
	return New("Boutik", l, o, c), l, c
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	e, l, c := newExporter(t)

	if _, err := l.AddClient(ctx, "jean"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddPriceItem(ctx, "Beer", 100, ""); err != nil {
		t.Fatal(err)
	}

	b := e.Build()
	if b.Version != "2.0" || b.AppName != "Boutik" {
		t.Errorf("bundle header = %q/%q", b.Version, b.AppName)
	}
	if b.ExportDate.IsZero() {
		t.Errorf("ExportDate not set")
	}
	if b.CreditManagement == nil || len(b.CreditManagement.Clients) != 1 {
		t.Errorf("credit section = %+v", b.CreditManagement)
	}
	if b.PriceList == nil || len(b.PriceList.Items) != 1 {
		t.Errorf("price list section = %+v", b.PriceList)
	}
	if b.OverManagement == nil || b.OrderManagement == nil {
		t.Errorf("empty modules should still export as empty sections")
	}
}

func TestValidate(t *testing.T) {
	credit := &models.CreditData{}
	tests := []struct {
		name   string
		bundle Bundle
		ok     bool
	}{
		{"current version with one section", Bundle{Version: "2.0", CreditManagement: credit}, true},
		{"old version", Bundle{Version: "1.0", CreditManagement: credit}, false},
		{"missing version", Bundle{CreditManagement: credit}, false},
		{"no sections", Bundle{Version: "2.0"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bundle.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestImportAppliesOnlyPresentSections(t *testing.T) {
	ctx := context.Background()
	e, l, c := newExporter(t)

	if _, err := c.AddPriceItem(ctx, "Beer", 100, ""); err != nil {
		t.Fatal(err)
	}

	bundle := &Bundle{
		Version: "2.0",
		AppName: "Boutik",
		CreditManagement: &models.CreditData{
			Clients: []models.Client{{ID: "G001", Name: "Jean", TotalDebt: 50, CreatedAt: time.Now()}},
		},
	}
	if err := e.Import(ctx, bundle); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	clients := l.ListClients()
	if len(clients) != 1 || clients[0].ID != "G001" {
		t.Errorf("clients after import = %+v", clients)
	}
	// The bundle had no price list section, so the existing one survives.
	if items := c.ListPriceItems(); len(items) != 1 {
		t.Errorf("price list after import = %+v, want untouched", items)
	}
}

func TestBundleJSONShape(t *testing.T) {
	e, _, _ := newExporter(t)
	raw, err := json.Marshal(e.Build())
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "appName", "exportDate", "priceList", "creditManagement", "overManagement", "orderManagement"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("bundle JSON missing %q", key)
		}
	}
}
