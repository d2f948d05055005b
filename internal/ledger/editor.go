// Package ledger implements the write side of the budget: validated
// transaction submission, single-document deletion and default-category
// seeding. It is the sole writer to the store; reads flow through the
// live query hub.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/store"
)

type Editor struct {
	transactions store.TransactionStore
	categories   store.CategoryStore
	changes      store.ChangeSink
	logger       *log.Logger
}

func NewEditor(transactions store.TransactionStore, categories store.CategoryStore, changes store.ChangeSink, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger)
	}
	return &Editor{
		transactions: transactions,
		categories:   categories,
		changes:      changes,
		logger:       logger,
	}
}

// Submit validates the draft and persists it. Validation failures
// produce zero writes. When the draft names a category the user does
// not have yet, the category is created first with the draft's type;
// category and transaction are two independent writes, so a failure in
// between can leave a category with no transaction. That orphan is
// tolerated: it is indistinguishable from an ad hoc category the user
// created and never used.
//
// On failure the caller's draft is untouched; on success the caller
// resets to core.NewDraft().
func (e *Editor) Submit(ctx context.Context, userID string, draft core.Draft) (core.Transaction, error) {
	if userID == "" {
		return core.Transaction{}, fmt.Errorf("submit requires a user identity")
	}

	tx, err := draft.Parse()
	if err != nil {
		return core.Transaction{}, err
	}
	tx.UserID = userID

	existing, err := e.categories.ListCategories(ctx, userID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("list categories: %w", err)
	}

	if !categoryExists(existing, tx.Category) {
		created, err := e.categories.CreateCategory(ctx, core.Category{
			Name:   tx.Category,
			Type:   tx.Type,
			UserID: userID,
		})
		if err != nil {
			return core.Transaction{}, fmt.Errorf("create category %q: %w", tx.Category, err)
		}
		e.publish(ctx, store.NewChange(store.CollectionCategories, store.OpCreate, userID, created.ID))
		e.logger.InfoContext(ctx, "Created ad hoc category",
			log.FieldUserID, userID,
			log.FieldCategory, created.Name)
	}

	created, err := e.transactions.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	e.publish(ctx, store.NewChange(store.CollectionTransactions, store.OpCreate, userID, created.ID))

	e.logger.InfoContext(ctx, "Transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, userID,
		log.FieldDocID, created.ID,
		log.FieldOwner, string(created.Owner),
		log.FieldCategory, created.Category,
		log.FieldAmountCents, created.Amount.Cents)
	return created, nil
}

// Delete removes a single transaction. There is no undo and no
// optimistic local mutation: consumers see the document disappear when
// the next snapshot arrives.
func (e *Editor) Delete(ctx context.Context, userID, transactionID string) error {
	if err := e.transactions.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return err
	}
	e.publish(ctx, store.NewChange(store.CollectionTransactions, store.OpDelete, userID, transactionID))

	e.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldDocID, transactionID)
	return nil
}

// publish forwards a change event. The write already succeeded, so a
// publish failure only delays snapshot refresh; it is logged, not
// returned.
func (e *Editor) publish(ctx context.Context, ch store.Change) {
	if e.changes == nil {
		return
	}
	if err := e.changes.Publish(ctx, ch); err != nil {
		e.logger.ErrorContext(ctx, "Failed to publish change event",
			log.FieldCollection, string(ch.Collection),
			log.FieldUserID, ch.UserID,
			log.FieldDocID, ch.DocID,
			log.FieldError, err.Error())
	}
}

func categoryExists(categories []core.Category, name string) bool {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
