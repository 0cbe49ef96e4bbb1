// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/kreolabs/boutik/internal/models"
)

// Store persists each module's record set as a snapshot. Services keep the
// authoritative copy in memory and write the whole module back after every
// mutation, one snapshot per module.
//
// This abstraction allows swapping backends (embedded SQLite, remote HTTP
// mirror, remote-with-local-fallback) without changing the service layer.
//
// Load implementations return an empty record set, not an error, when the
// backend holds no data yet.
type Store interface {
	LoadCredit(ctx context.Context) (*models.CreditData, error)
	SaveCredit(ctx context.Context, data *models.CreditData) error

	LoadOrders(ctx context.Context) (*models.OrderData, error)
	SaveOrders(ctx context.Context, data *models.OrderData) error

	LoadPriceList(ctx context.Context) (*models.PriceListData, error)
	SavePriceList(ctx context.Context, data *models.PriceListData) error

	LoadOverItems(ctx context.Context) (*models.OverData, error)
	SaveOverItems(ctx context.Context, data *models.OverData) error

	// Close releases any resources held by the store.
	Close() error
}
