package memory

import (
	"context"
	"errors"
	"testing"

	"budget/internal/core"
	"budget/internal/store"
)

func newTx(userID string, date core.Date, cents int64) core.Transaction {
	return core.Transaction{
		Type:     core.TypeExpense,
		Amount:   core.Money{Cents: cents},
		Category: "Продукты",
		Owner:    core.OwnerArtur,
		UserID:   userID,
		Date:     date,
	}
}

func TestListTransactionsOrderAndScope(t *testing.T) {
	s := New()
	ctx := context.Background()

	older := newTx("u1", core.NewDate(2026, 8, 1), 100)
	newer := newTx("u1", core.NewDate(2026, 9, 1), 200)
	other := newTx("u2", core.NewDate(2026, 9, 15), 300)

	for _, tx := range []core.Transaction{older, newer, other} {
		if _, err := s.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
	}

	got, err := s.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (user scoping)", len(got))
	}
	if got[0].Amount.Cents != 200 || got[1].Amount.Cents != 100 {
		t.Errorf("order = [%d, %d], want date descending", got[0].Amount.Cents, got[1].Amount.Cents)
	}
}

func TestListTransactionsTiesKeepInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := core.NewDate(2026, 9, 1)

	first, _ := s.CreateTransaction(ctx, newTx("u1", day, 1))
	second, _ := s.CreateTransaction(ctx, newTx("u1", day, 2))

	got, err := s.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Error("same-date transactions must keep stable order")
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	kept, _ := s.CreateTransaction(ctx, newTx("u1", core.NewDate(2026, 9, 1), 1))
	doomed, _ := s.CreateTransaction(ctx, newTx("u1", core.NewDate(2026, 9, 2), 2))

	if err := s.DeleteTransaction(ctx, "u1", doomed.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	got, _ := s.ListTransactions(ctx, "u1")
	if len(got) != 1 || got[0].ID != kept.ID {
		t.Errorf("remaining = %v, want only %s", got, kept.ID)
	}

	if err := s.DeleteTransaction(ctx, "u1", doomed.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
	// Deleting someone else's document must not succeed either.
	if err := s.DeleteTransaction(ctx, "u2", kept.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user delete = %v, want ErrNotFound", err)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, store.User{Email: "a@b.cd", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if _, err := s.CreateUser(ctx, store.User{Email: "a@b.cd", PasswordHash: "y"}); !errors.Is(err, store.ErrEmailTaken) {
		t.Errorf("duplicate CreateUser() = %v, want ErrEmailTaken", err)
	}

	u, err := s.GetUserByEmail(ctx, "a@b.cd")
	if err != nil || u.ID == "" {
		t.Errorf("GetUserByEmail() = %+v, %v", u, err)
	}
	if _, err := s.GetUserByEmail(ctx, "missing@b.cd"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetUserByEmail(missing) = %v, want ErrNotFound", err)
	}
}
