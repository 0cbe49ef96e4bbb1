package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/storage/memory"
)

func TestPriceItems(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name case-insensitive", func(t *testing.T) {
		s := New(memory.New())
		if _, err := s.AddPriceItem(ctx, "Beer", 100, "Drinks"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddPriceItem(ctx, "beer", 90, ""); !errors.Is(err, apperr.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("update checks other entries only", func(t *testing.T) {
		s := New(memory.New())
		item, err := s.AddPriceItem(ctx, "Beer", 100, "Drinks")
		if err != nil {
			t.Fatal(err)
		}
		s.AddPriceItem(ctx, "Guinness", 120, "Drinks")

		// Renaming onto its own name is fine.
		if _, err := s.UpdatePriceItem(ctx, item.ID, "Beer", 110, "Drinks"); err != nil {
			t.Errorf("self rename rejected: %v", err)
		}
		// Renaming onto another entry's name is not.
		if _, err := s.UpdatePriceItem(ctx, item.ID, "guinness", 110, ""); !errors.Is(err, apperr.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		s := New(memory.New())
		if _, err := s.AddPriceItem(ctx, "  ", 100, ""); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("blank name: expected ErrValidation, got %v", err)
		}
		if _, err := s.AddPriceItem(ctx, "Beer", -1, ""); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("negative price: expected ErrValidation, got %v", err)
		}
	})

	t.Run("list sorted and search substring", func(t *testing.T) {
		s := New(memory.New())
		s.AddPriceItem(ctx, "Guinness", 120, "")
		s.AddPriceItem(ctx, "Beer", 100, "")
		s.AddPriceItem(ctx, "Green Beer", 105, "")

		items := s.ListPriceItems()
		if len(items) != 3 || items[0].Name != "Beer" || items[1].Name != "Green Beer" {
			t.Errorf("list order = %+v", items)
		}

		matches := s.SearchPriceItems("beer")
		if len(matches) != 2 {
			t.Errorf("search %q returned %d matches, want 2", "beer", len(matches))
		}
		if got := s.SearchPriceItems("  "); got != nil {
			t.Errorf("blank search returned %v", got)
		}
	})

	t.Run("delete unknown", func(t *testing.T) {
		s := New(memory.New())
		if err := s.DeletePriceItem(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestOverItems(t *testing.T) {
	ctx := context.Background()

	t.Run("set and adjust", func(t *testing.T) {
		s := New(memory.New())
		item, err := s.AddOverItem(ctx, "Coca", 5)
		if err != nil {
			t.Fatal(err)
		}

		updated, err := s.SetOverQuantity(ctx, item.ID, 12)
		if err != nil {
			t.Fatal(err)
		}
		if updated.Quantity != 12 {
			t.Errorf("Quantity = %d, want 12", updated.Quantity)
		}

		updated, err = s.AdjustOverQuantity(ctx, item.ID, -20)
		if err != nil {
			t.Fatal(err)
		}
		if updated.Quantity != 0 {
			t.Errorf("Quantity = %d, want 0 after clamped adjust", updated.Quantity)
		}
	})

	t.Run("duplicate and validation", func(t *testing.T) {
		s := New(memory.New())
		s.AddOverItem(ctx, "Coca", 5)
		if _, err := s.AddOverItem(ctx, "coca", 1); !errors.Is(err, apperr.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
		if _, err := s.AddOverItem(ctx, "Malta", -1); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("negative quantity: expected ErrValidation, got %v", err)
		}
	})

	t.Run("persistence failure keeps mutation", func(t *testing.T) {
		store := memory.New()
		s := New(store)
		item, err := s.AddOverItem(ctx, "Coca", 5)
		if err != nil {
			t.Fatal(err)
		}

		store.FailSaves = errors.New("disk full")
		_, err = s.SetOverQuantity(ctx, item.ID, 9)
		if !errors.Is(err, apperr.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
		items := s.ListOverItems()
		if len(items) != 1 || items[0].Quantity != 9 {
			t.Errorf("in-memory state after failed save = %+v, want quantity 9", items)
		}
	})
}
