// Package remote mirrors module snapshots to a remote table store over HTTP.
//
// Each module has one resource: GET reads the full snapshot, PUT replaces it.
// The wire shape uses snake_case field names (see dto.go). There are no
// retries; a failed call surfaces as apperr.ErrPersistence and the caller
// decides whether a local fallback exists.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/storage"
)

// Ensure RemoteStore implements storage.Store
var _ storage.Store = (*RemoteStore)(nil)

// RemoteStore implements storage.Store against a remote HTTP table store.
type RemoteStore struct {
	baseURL string
	client  *http.Client
}

// New creates a RemoteStore for the given base URL. The timeout bounds every
// request; there is no cancellation beyond it.
func New(baseURL string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (s *RemoteStore) Close() error {
	return nil
}

// errNoSnapshot signals a 404: the remote holds no data for the module yet.
var errNoSnapshot = errors.New("no snapshot")

func (s *RemoteStore) get(ctx context.Context, module string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/store/"+module, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperr.ErrPersistence, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", apperr.ErrPersistence, module, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNoSnapshot
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: read %s: unexpected status %d", apperr.ErrPersistence, module, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperr.ErrPersistence, module, err)
	}
	return nil
}

func (s *RemoteStore) put(ctx context.Context, module string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperr.ErrPersistence, module, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/store/"+module, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperr.ErrPersistence, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", apperr.ErrPersistence, module, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: write %s: unexpected status %d", apperr.ErrPersistence, module, resp.StatusCode)
	}
	return nil
}

// LoadCredit reads the credit module snapshot from the remote store.
// A missing snapshot is an empty one.
func (s *RemoteStore) LoadCredit(ctx context.Context) (*models.CreditData, error) {
	var wire creditWire
	if err := s.get(ctx, "credit", &wire); err != nil {
		if errors.Is(err, errNoSnapshot) {
			return &models.CreditData{}, nil
		}
		return nil, err
	}
	return wire.toModel(), nil
}

// SaveCredit replaces the remote credit module snapshot.
func (s *RemoteStore) SaveCredit(ctx context.Context, data *models.CreditData) error {
	return s.put(ctx, "credit", creditToWire(data))
}

// LoadOrders reads the order module snapshot from the remote store.
func (s *RemoteStore) LoadOrders(ctx context.Context) (*models.OrderData, error) {
	var wire orderWire
	if err := s.get(ctx, "orders", &wire); err != nil {
		if errors.Is(err, errNoSnapshot) {
			return &models.OrderData{}, nil
		}
		return nil, err
	}
	return wire.toModel(), nil
}

// SaveOrders replaces the remote order module snapshot.
func (s *RemoteStore) SaveOrders(ctx context.Context, data *models.OrderData) error {
	return s.put(ctx, "orders", ordersToWire(data))
}

// LoadPriceList reads the price-list snapshot from the remote store.
func (s *RemoteStore) LoadPriceList(ctx context.Context) (*models.PriceListData, error) {
	var wire priceListWire
	if err := s.get(ctx, "pricelist", &wire); err != nil {
		if errors.Is(err, errNoSnapshot) {
			return &models.PriceListData{}, nil
		}
		return nil, err
	}
	return wire.toModel(), nil
}

// SavePriceList replaces the remote price-list snapshot.
func (s *RemoteStore) SavePriceList(ctx context.Context, data *models.PriceListData) error {
	return s.put(ctx, "pricelist", priceListToWire(data))
}

// LoadOverItems reads the over-items snapshot from the remote store.
func (s *RemoteStore) LoadOverItems(ctx context.Context) (*models.OverData, error) {
	var wire overWire
	if err := s.get(ctx, "over", &wire); err != nil {
		if errors.Is(err, errNoSnapshot) {
			return &models.OverData{}, nil
		}
		return nil, err
	}
	return wire.toModel(), nil
}

// SaveOverItems replaces the remote over-items snapshot.
func (s *RemoteStore) SaveOverItems(ctx context.Context, data *models.OverData) error {
	return s.put(ctx, "over", overToWire(data))
}
