package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"budget/internal/core"
	"budget/internal/store"
	"budget/internal/store/memory"
)

type recordingSink struct {
	mu      sync.Mutex
	changes []store.Change
	err     error
}

func (r *recordingSink) Publish(_ context.Context, ch store.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.changes = append(r.changes, ch)
	return nil
}

func (r *recordingSink) recorded() []store.Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Change(nil), r.changes...)
}

func newTestEditor() (*Editor, *memory.Store, *recordingSink) {
	st := memory.New()
	sink := &recordingSink{}
	return NewEditor(st, st, sink, nil), st, sink
}

func validDraft() core.Draft {
	d := core.NewDraft()
	d.Amount = "12,50"
	d.Category = "Продукты"
	return d
}

func TestSubmitInvalidDraftWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Draft)
	}{
		{"empty amount", func(d *core.Draft) { d.Amount = "" }},
		{"malformed amount", func(d *core.Draft) { d.Amount = "abc" }},
		{"negative amount", func(d *core.Draft) { d.Amount = "-5" }},
		{"empty category", func(d *core.Draft) { d.Category = "" }},
		{"unknown owner", func(d *core.Draft) { d.Owner = core.Owner("nobody") }},
		{"unknown type", func(d *core.Draft) { d.Type = core.TransactionType("transfer") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor, st, sink := newTestEditor()
			draft := validDraft()
			tt.mutate(&draft)

			if _, err := editor.Submit(context.Background(), "u1", draft); err == nil {
				t.Fatal("Submit() succeeded with an invalid draft")
			}

			txs, _ := st.ListTransactions(context.Background(), "u1")
			cats, _ := st.ListCategories(context.Background(), "u1")
			if len(txs) != 0 || len(cats) != 0 {
				t.Errorf("invalid draft wrote %d transactions, %d categories", len(txs), len(cats))
			}
			if got := sink.recorded(); len(got) != 0 {
				t.Errorf("invalid draft published %d changes", len(got))
			}
		})
	}
}

func TestSubmitCreatesCategoryInline(t *testing.T) {
	editor, st, sink := newTestEditor()
	ctx := context.Background()

	created, err := editor.Submit(ctx, "u1", validDraft())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created.Amount.Cents != 1250 {
		t.Errorf("Amount.Cents = %d, want 1250", created.Amount.Cents)
	}

	cats, err := st.ListCategories(ctx, "u1")
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Продукты" || cats[0].Type != core.TypeExpense {
		t.Fatalf("categories = %+v, want one expense Продукты", cats)
	}

	changes := sink.recorded()
	if len(changes) != 2 {
		t.Fatalf("published %d changes, want 2", len(changes))
	}
	if changes[0].Collection != store.CollectionCategories || changes[0].Op != store.OpCreate {
		t.Errorf("first change = %+v, want category create", changes[0])
	}
	if changes[1].Collection != store.CollectionTransactions || changes[1].DocID != created.ID {
		t.Errorf("second change = %+v, want transaction create for %s", changes[1], created.ID)
	}
}

func TestSubmitReusesExistingCategory(t *testing.T) {
	editor, st, sink := newTestEditor()
	ctx := context.Background()

	if _, err := st.CreateCategory(ctx, core.Category{Name: "Продукты", Type: core.TypeExpense, UserID: "u1"}); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	draft := validDraft()
	draft.Category = "продукты" // match is case-insensitive
	if _, err := editor.Submit(ctx, "u1", draft); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	cats, _ := st.ListCategories(ctx, "u1")
	if len(cats) != 1 {
		t.Errorf("categories = %d, want the existing one reused", len(cats))
	}

	changes := sink.recorded()
	if len(changes) != 1 || changes[0].Collection != store.CollectionTransactions {
		t.Errorf("changes = %+v, want only the transaction create", changes)
	}
}

func TestSubmitSucceedsWhenPublishFails(t *testing.T) {
	st := memory.New()
	sink := &recordingSink{err: errors.New("broker down")}
	editor := NewEditor(st, st, sink, nil)

	if _, err := editor.Submit(context.Background(), "u1", validDraft()); err != nil {
		t.Fatalf("Submit() error = %v, publish failure must not surface", err)
	}

	txs, _ := st.ListTransactions(context.Background(), "u1")
	if len(txs) != 1 {
		t.Errorf("transactions = %d, want 1", len(txs))
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	editor, _, _ := newTestEditor()
	if _, err := editor.Submit(context.Background(), "", validDraft()); err == nil {
		t.Error("Submit() without identity succeeded")
	}
}

func TestDelete(t *testing.T) {
	editor, st, sink := newTestEditor()
	ctx := context.Background()

	created, err := editor.Submit(ctx, "u1", validDraft())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := editor.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	txs, _ := st.ListTransactions(ctx, "u1")
	if len(txs) != 0 {
		t.Errorf("transactions = %d after delete, want 0", len(txs))
	}

	changes := sink.recorded()
	last := changes[len(changes)-1]
	if last.Op != store.OpDelete || last.DocID != created.ID {
		t.Errorf("last change = %+v, want delete of %s", last, created.ID)
	}
}

func TestDeleteUnknownPublishesNothing(t *testing.T) {
	editor, _, sink := newTestEditor()

	if err := editor.Delete(context.Background(), "u1", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete() = %v, want ErrNotFound", err)
	}
	if got := sink.recorded(); len(got) != 0 {
		t.Errorf("failed delete published %d changes", len(got))
	}
}
