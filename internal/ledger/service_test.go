package ledger

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kreolabs/boutik/internal/apperr"
	"github.com/kreolabs/boutik/internal/models"
	"github.com/kreolabs/boutik/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(memory.New())
}

func mustAddClient(t *testing.T, s *Service, name string) *models.Client {
	t.Helper()
	client, err := s.AddClient(context.Background(), name)
	if err != nil {
		t.Fatalf("AddClient(%q) failed: %v", name, err)
	}
	return client
}

func TestAddClient(t *testing.T) {
	ctx := context.Background()

	t.Run("first client gets G001 and a title-cased name", func(t *testing.T) {
		s := newTestService(t)
		client := mustAddClient(t, s, "john doe")
		if client.ID != "G001" {
			t.Errorf("ID = %q, want G001", client.ID)
		}
		if client.Name != "John Doe" {
			t.Errorf("Name = %q, want John Doe", client.Name)
		}
		if client.TotalDebt != 0 {
			t.Errorf("TotalDebt = %v, want 0", client.TotalDebt)
		}
	})

	t.Run("case-insensitive duplicate is rejected", func(t *testing.T) {
		s := newTestService(t)
		mustAddClient(t, s, "john")
		_, err := s.AddClient(ctx, "John")
		if !errors.Is(err, apperr.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.AddClient(ctx, "   ")
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("deleted id is reused gap-first", func(t *testing.T) {
		s := newTestService(t)
		mustAddClient(t, s, "alice")   // G001
		bob := mustAddClient(t, s, "bob") // G002
		mustAddClient(t, s, "carol")   // G003

		if err := s.DeleteClient(ctx, bob.ID); err != nil {
			t.Fatalf("DeleteClient failed: %v", err)
		}
		replacement := mustAddClient(t, s, "dan")
		if replacement.ID != "G002" {
			t.Errorf("ID = %q, want reused G002", replacement.ID)
		}

		next := mustAddClient(t, s, "eve")
		if next.ID != "G004" {
			t.Errorf("ID = %q, want G004", next.ID)
		}
	})
}

func TestDebtInvariant(t *testing.T) {
	// totalDebt == sum(debts) - sum(payments), clamped at 0.
	ctx := context.Background()
	s := newTestService(t)
	client := mustAddClient(t, s, "alice")

	steps := []struct {
		kind   string
		amount float64
		want   float64
	}{
		{"debt", 100, 100},
		{"debt", 50, 150},
		{"payment", 30, 120},
		{"payment", 200, 0}, // clamp
		{"debt", 75, 75},
	}

	for _, step := range steps {
		var err error
		switch step.kind {
		case "debt":
			_, err = s.AddTransaction(ctx, client.ID, "goods", step.amount)
		case "payment":
			_, err = s.AddPartialPayment(ctx, client.ID, step.amount)
		}
		if err != nil {
			t.Fatalf("%s %v failed: %v", step.kind, step.amount, err)
		}
		debt, err := s.TotalDebt(client.ID)
		if err != nil {
			t.Fatalf("TotalDebt failed: %v", err)
		}
		if math.Abs(debt-step.want) > 0.001 {
			t.Errorf("after %s %v: debt = %v, want %v", step.kind, step.amount, debt, step.want)
		}
	}
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	client := mustAddClient(t, s, "alice")

	tests := []struct {
		name        string
		description string
		amount      float64
	}{
		{"empty description", "  ", 10},
		{"negative amount", "goods", -5},
		{"NaN amount", "goods", math.NaN()},
		{"infinite amount", "goods", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddTransaction(ctx, client.ID, tt.description, tt.amount)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	t.Run("unknown client", func(t *testing.T) {
		_, err := s.AddTransaction(ctx, "G999", "goods", 10)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSettleClient(t *testing.T) {
	ctx := context.Background()

	t.Run("zeroes debt and keeps only one full record", func(t *testing.T) {
		s := newTestService(t)
		client := mustAddClient(t, s, "alice")
		if _, err := s.AddTransaction(ctx, client.ID, "rice", 120); err != nil {
			t.Fatal(err)
		}

		if _, err := s.SettleClient(ctx, client.ID); err != nil {
			t.Fatalf("SettleClient failed: %v", err)
		}
		debt, _ := s.TotalDebt(client.ID)
		if debt != 0 {
			t.Errorf("debt after settle = %v, want 0", debt)
		}

		// Settling again must replace, not accumulate, the full record.
		if _, err := s.SettleClient(ctx, client.ID); err != nil {
			t.Fatalf("second SettleClient failed: %v", err)
		}
		payments, _ := s.Payments(client.ID)
		full := 0
		for _, p := range payments {
			if p.Type == models.PaymentTypeFull {
				full++
			}
		}
		if full != 1 {
			t.Errorf("full payment records = %d, want 1", full)
		}
	})

	t.Run("return-related transactions survive amount-only settle", func(t *testing.T) {
		s := newTestService(t)
		client := mustAddClient(t, s, "alice")
		s.AddTransaction(ctx, client.ID, "rice and flour", 120)
		s.AddTransaction(ctx, client.ID, "2 Chopine Beer", 80)
		s.AddTransaction(ctx, client.ID, "1 Bouteille Green", 60)
		s.RecordReturn(ctx, client.ID, "1 Chopine Beer")
		s.UpdateBottlesOwed(ctx, client.ID, models.BottlesOwed{Chopines: 2})

		if _, err := s.SettleClient(ctx, client.ID); err != nil {
			t.Fatalf("SettleClient failed: %v", err)
		}

		txs, _ := s.Transactions(client.ID)
		if len(txs) != 3 {
			t.Fatalf("transactions after settle = %d, want 3 (container history kept)", len(txs))
		}
		for _, tx := range txs {
			if tx.Description == "rice and flour" {
				t.Errorf("plain debt transaction survived settle: %+v", tx)
			}
		}

		got, _ := s.GetClient(client.ID)
		if got.BottlesOwed != (models.BottlesOwed{Chopines: 2}) {
			t.Errorf("BottlesOwed changed by settle: %+v", got.BottlesOwed)
		}
	})

	t.Run("full clear wipes transactions and bottles", func(t *testing.T) {
		s := newTestService(t)
		client := mustAddClient(t, s, "alice")
		s.AddTransaction(ctx, client.ID, "2 Chopine Beer", 80)
		s.UpdateBottlesOwed(ctx, client.ID, models.BottlesOwed{Beer: 4})

		if _, err := s.SettleClientWithFullClear(ctx, client.ID); err != nil {
			t.Fatalf("SettleClientWithFullClear failed: %v", err)
		}

		txs, _ := s.Transactions(client.ID)
		if len(txs) != 0 {
			t.Errorf("transactions after full clear = %d, want 0", len(txs))
		}
		got, _ := s.GetClient(client.ID)
		if !got.BottlesOwed.IsZero() {
			t.Errorf("BottlesOwed after full clear = %+v, want zero", got.BottlesOwed)
		}
	})
}

func TestDeleteClientCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	client := mustAddClient(t, s, "alice")
	other := mustAddClient(t, s, "bob")
	s.AddTransaction(ctx, client.ID, "rice", 50)
	s.AddPartialPayment(ctx, client.ID, 10)
	s.AddTransaction(ctx, other.ID, "flour", 30)

	if err := s.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("DeleteClient failed: %v", err)
	}

	if _, err := s.GetClient(client.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	snapshot := s.Snapshot()
	for _, tx := range snapshot.Transactions {
		if tx.ClientID == client.ID {
			t.Errorf("orphan transaction survived: %+v", tx)
		}
	}
	for _, p := range snapshot.Payments {
		if p.ClientID == client.ID {
			t.Errorf("orphan payment survived: %+v", p)
		}
	}

	otherTxs, err := s.Transactions(other.ID)
	if err != nil || len(otherTxs) != 1 {
		t.Errorf("other client's transactions affected: %v, %v", otherTxs, err)
	}
}

func TestListClientsRecencyOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	alice := mustAddClient(t, s, "alice")
	clock = base.Add(time.Minute)
	bob := mustAddClient(t, s, "bob")

	clock = base.Add(2 * time.Minute)
	s.AddTransaction(ctx, alice.ID, "rice", 10)

	list := s.ListClients()
	if len(list) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(list))
	}
	if list[0].ID != alice.ID || list[1].ID != bob.ID {
		t.Errorf("recency order wrong: %s then %s", list[0].ID, list[1].ID)
	}
}

func TestPersistenceFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := New(store)
	client := mustAddClient(t, s, "alice")

	store.FailSaves = errors.New("disk full")
	_, err := s.AddTransaction(ctx, client.ID, "rice", 40)
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// The in-memory mutation stands even though persistence failed.
	debt, _ := s.TotalDebt(client.ID)
	if debt != 40 {
		t.Errorf("debt = %v, want 40 despite persistence failure", debt)
	}
}

func TestOutstandingAndOverdue(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	client := mustAddClient(t, s, "alice")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	s.AddTransaction(ctx, client.ID, "2 Chopine Beer", 80)
	s.RecordReturn(ctx, client.ID, "1 Chopine Beer")

	outstanding, err := s.Outstanding(client.ID)
	if err != nil {
		t.Fatalf("Outstanding failed: %v", err)
	}
	if outstanding["Chopine Beer"] != 1 {
		t.Errorf("outstanding = %v, want {Chopine Beer: 1}", outstanding)
	}

	overdue, err := s.HasOverdue(client.ID)
	if err != nil || overdue {
		t.Errorf("fresh issue flagged overdue: %v, %v", overdue, err)
	}

	clock = base.AddDate(0, 0, 22)
	overdue, err = s.HasOverdue(client.ID)
	if err != nil || !overdue {
		t.Errorf("three-week-old issue not flagged overdue: %v, %v", overdue, err)
	}
}
