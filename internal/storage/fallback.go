package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kreolabs/boutik/internal/models"
)

// Ensure FallbackStore implements Store
var _ Store = (*FallbackStore)(nil)

// FallbackStore mirrors writes to a remote store while keeping a local store
// authoritative. Reads prefer the remote copy and silently fall back to the
// local one when the remote is unreachable; writes always land locally and a
// failed remote write is logged, never surfaced. This keeps the fallback
// policy in one place instead of at every call site.
type FallbackStore struct {
	remote Store
	local  Store
}

// NewFallback wraps a remote store with a local authoritative copy.
func NewFallback(remote, local Store) *FallbackStore {
	return &FallbackStore{remote: remote, local: local}
}

func load[T any](ctx context.Context, module string,
	fromRemote func(context.Context) (*T, error),
	fromLocal func(context.Context) (*T, error),
) (*T, error) {
	data, err := fromRemote(ctx)
	if err == nil {
		return data, nil
	}
	slog.Warn("remote load failed, using local copy", "module", module, "error", err)
	return fromLocal(ctx)
}

func save[T any](ctx context.Context, module string, data *T,
	toLocal func(context.Context, *T) error,
	toRemote func(context.Context, *T) error,
) error {
	if err := toLocal(ctx, data); err != nil {
		return err
	}
	if err := toRemote(ctx, data); err != nil {
		slog.Warn("remote save failed, local copy remains authoritative", "module", module, "error", err)
	}
	return nil
}

func (s *FallbackStore) LoadCredit(ctx context.Context) (*models.CreditData, error) {
	return load(ctx, "credit", s.remote.LoadCredit, s.local.LoadCredit)
}

func (s *FallbackStore) SaveCredit(ctx context.Context, data *models.CreditData) error {
	return save(ctx, "credit", data, s.local.SaveCredit, s.remote.SaveCredit)
}

func (s *FallbackStore) LoadOrders(ctx context.Context) (*models.OrderData, error) {
	return load(ctx, "orders", s.remote.LoadOrders, s.local.LoadOrders)
}

func (s *FallbackStore) SaveOrders(ctx context.Context, data *models.OrderData) error {
	return save(ctx, "orders", data, s.local.SaveOrders, s.remote.SaveOrders)
}

func (s *FallbackStore) LoadPriceList(ctx context.Context) (*models.PriceListData, error) {
	return load(ctx, "pricelist", s.remote.LoadPriceList, s.local.LoadPriceList)
}

func (s *FallbackStore) SavePriceList(ctx context.Context, data *models.PriceListData) error {
	return save(ctx, "pricelist", data, s.local.SavePriceList, s.remote.SavePriceList)
}

func (s *FallbackStore) LoadOverItems(ctx context.Context) (*models.OverData, error) {
	return load(ctx, "over", s.remote.LoadOverItems, s.local.LoadOverItems)
}

func (s *FallbackStore) SaveOverItems(ctx context.Context, data *models.OverData) error {
	return save(ctx, "over", data, s.local.SaveOverItems, s.remote.SaveOverItems)
}

// Close closes both stores, reporting the first error.
func (s *FallbackStore) Close() error {
	remoteErr := s.remote.Close()
	localErr := s.local.Close()
	return errors.Join(remoteErr, localErr)
}
