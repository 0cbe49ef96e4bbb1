// Package export builds and applies the versioned full-data bundle. The
// bundle carries one optional section per module; import applies only the
// sections present.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/catalog"
	"github.com/kreolabs/boutik/internal/ledger"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/orders"
)

// BundleVersion is the bundle format this build reads and writes.
const BundleVersion = "2.0"

// Bundle is the full export document. Module sections are pointers so an
// absent section is distinguishable from an empty one.
type Bundle struct {
	Version          string                `json:"version"`
	AppName          string                `json:"appName"`
	ExportDate       time.Time             `json:"exportDate"`
	PriceList        *models.PriceListData `json:"priceList,omitempty"`
	CreditManagement *models.CreditData    `json:"creditManagement,omitempty"`
	OverManagement   *models.OverData      `json:"overManagement,omitempty"`
	OrderManagement  *models.OrderData     `json:"orderManagement,omitempty"`
}

// Exporter assembles bundles from and applies bundles to the services.
type Exporter struct {
	appName string
	ledger  *ledger.Service
	orders  *orders.Service
	catalog *catalog.Service
	now     func() time.Time
}

// New creates an Exporter over the three services.
func New(appName string, l *ledger.Service, o *orders.Service, c *catalog.Service) *Exporter {
	return &Exporter{appName: appName, ledger: l, orders: o, catalog: c, now: time.Now}
}

// Build snapshots every module into a complete bundle.
func (e *Exporter) Build() *Bundle {
	credit := e.ledger.Snapshot()
	orderData := e.orders.Snapshot()
	priceList := e.catalog.PriceListSnapshot()
	over := e.catalog.OverSnapshot()

	return &Bundle{
		Version:          BundleVersion,
		AppName:          e.appName,
		ExportDate:       e.now(),
		PriceList:        &priceList,
		CreditManagement: &credit,
		OverManagement:   &over,
		OrderManagement:  &orderData,
	}
}

// Validate checks the bundle format: the version must match and at least
// one module section must be present.
func (b *Bundle) Validate() error {
	if b.Version != BundleVersion {
		return fmt.Errorf("unsupported bundle version %q, want %q: %w", b.Version, BundleVersion, apperr.ErrValidation)
	}
	if b.PriceList == nil && b.CreditManagement == nil && b.OverManagement == nil && b.OrderManagement == nil {
		return fmt.Errorf("bundle has no module sections: %w", apperr.ErrValidation)
	}
	return nil
}

// Import validates the bundle and replaces the data of every section it
// carries. Sections the bundle omits are left untouched.
func (e *Exporter) Import(ctx context.Context, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if b.CreditManagement != nil {
		if err := e.ledger.Replace(ctx, *b.CreditManagement); err != nil {
			return fmt.Errorf("import credit data: %w", err)
		}
	}
	if b.OrderManagement != nil {
		if err := e.orders.Replace(ctx, *b.OrderManagement); err != nil {
			return fmt.Errorf("import order data: %w", err)
		}
	}
	if b.PriceList != nil {
		if err := e.catalog.ReplacePriceList(ctx, *b.PriceList); err != nil {
			return fmt.Errorf("import price list: %w", err)
		}
	}
	if b.OverManagement != nil {
		if err := e.catalog.ReplaceOver(ctx, *b.OverManagement); err != nil {
			return fmt.Errorf("import over items: %w", err)
		}
	}

	slog.Info("bundle imported", "app_name", b.AppName, "export_date", b.ExportDate)
	return nil
}
