package core

import "strings"

// Draft is the not-yet-persisted, user-edited representation of a
// transaction. Amount arrives as raw text exactly as typed.
type Draft struct {
	Type        TransactionType
	Amount      string
	Category    string
	Description string
	Owner       Owner
	Date        Date
}

// NewDraft returns a blank draft with the defaults a fresh input surface
// starts from: expense, first household member, today's date.
func NewDraft() Draft {
	return Draft{
		Type:  TypeExpense,
		Owner: OwnerArtur,
		Date:  Today(),
	}
}

// Parse validates the draft and converts it into a transaction ready for
// persistence. ID, UserID and CreatedAt are left for the store to assign.
// The draft itself is never modified, so a failed submission loses
// nothing the user typed.
func (d Draft) Parse() (Transaction, error) {
	if !d.Type.Valid() {
		return Transaction{}, ErrInvalidType
	}
	if !d.Owner.Known() {
		return Transaction{}, ErrInvalidOwner
	}
	cents, err := ParseDecimalToCents(d.Amount)
	if err != nil {
		return Transaction{}, err
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		return Transaction{}, ErrEmptyCategory
	}
	date := d.Date
	if date.IsZero() {
		date = Today()
	}
	tx := Transaction{
		Type:        d.Type,
		Amount:      Money{Cents: cents},
		Category:    category,
		Description: strings.TrimSpace(d.Description),
		Owner:       d.Owner,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
