package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/storage"
	"github.com/kreolabs/boutik/internal/storage/memory"
)

func TestFallbackReadsPreferRemote(t *testing.T) {
	ctx := context.Background()
	remote := memory.New()
	local := memory.New()

	remote.SaveCredit(ctx, &models.CreditData{Clients: []models.Client{{ID: "G001", Name: "Remote"}}})
	local.SaveCredit(ctx, &models.CreditData{Clients: []models.Client{{ID: "G001", Name: "Local"}}})

	fb := storage.NewFallback(remote, local)
	data, err := fb.LoadCredit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if data.Clients[0].Name != "Remote" {
		t.Errorf("read %q, want the remote copy", data.Clients[0].Name)
	}
}

func TestFallbackReadUsesLocalWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	local.SaveCredit(ctx, &models.CreditData{Clients: []models.Client{{ID: "G001", Name: "Local"}}})

	fb := storage.NewFallback(failingStore{}, local)
	data, err := fb.LoadCredit(ctx)
	if err != nil {
		t.Fatalf("fallback read failed: %v", err)
	}
	if len(data.Clients) != 1 || data.Clients[0].Name != "Local" {
		t.Errorf("data = %+v, want the local copy", data)
	}
}

func TestFallbackWriteSurvivesRemoteFailure(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	fb := storage.NewFallback(failingStore{}, local)

	err := fb.SaveCredit(ctx, &models.CreditData{Clients: []models.Client{{ID: "G001", Name: "Jean"}}})
	if err != nil {
		t.Fatalf("write should succeed when only the remote fails: %v", err)
	}
	data, err := local.LoadCredit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Clients) != 1 {
		t.Errorf("local copy = %+v, want the written snapshot", data)
	}
}

func TestFallbackWriteFailsWhenLocalFails(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	local.FailSaves = errors.New("disk full")

	fb := storage.NewFallback(memory.New(), local)
	if err := fb.SaveCredit(ctx, &models.CreditData{}); err == nil {
		t.Errorf("expected the local failure to surface")
	}
}

// failingStore errors on every operation, standing in for an unreachable
// remote.
type failingStore struct{}

var errUnreachable = errors.New("remote unreachable")

func (failingStore) LoadCredit(context.Context) (*models.CreditData, error) {
	return nil, errUnreachable
}
func (failingStore) SaveCredit(context.Context, *models.CreditData) error { return errUnreachable }
func (failingStore) LoadOrders(context.Context) (*models.OrderData, error) {
	return nil, errUnreachable
}
func (failingStore) SaveOrders(context.Context, *models.OrderData) error { return errUnreachable }
func (failingStore) LoadPriceList(context.Context) (*models.PriceListData, error) {
	return nil, errUnreachable
}
func (failingStore) SavePriceList(context.Context, *models.PriceListData) error {
	return errUnreachable
}
func (failingStore) LoadOverItems(context.Context) (*models.OverData, error) {
	return nil, errUnreachable
}
func (failingStore) SaveOverItems(context.Context, *models.OverData) error { return errUnreachable }
func (failingStore) Close() error                                          { return nil }
