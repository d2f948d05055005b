package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// The household has exactly two members. Every transaction is attributed
// to one of them for per-person balance splitting.
const (
	OwnerArtur   Owner = "artur"
	OwnerValeria Owner = "valeria"
)

type (
	TransactionType string

	Owner string

	// Date is a calendar date with no meaningful time component.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is the system of record for a single money movement.
	// Transactions are never updated in place: they are created once and
	// either kept or deleted.
	Transaction struct {
		ID          string
		Type        TransactionType
		Amount      Money
		Category    string
		Description string
		Owner       Owner
		UserID      string
		Date        Date
		CreatedAt   time.Time
	}

	// Category labels transactions. Names are not unique; a transaction
	// referencing a name with no matching category is tolerated.
	Category struct {
		ID        string
		Name      string
		Type      TransactionType
		UserID    string
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("transaction type must be income or expense")
	ErrInvalidOwner  = errors.New("owner must be one of the household members")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyName     = errors.New("empty category name")
	ErrInvalidDate   = errors.New("invalid date")
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Known reports whether the owner is one of the two household members.
func (o Owner) Known() bool {
	return o == OwnerArtur || o == OwnerValeria
}

// Owners returns the fixed household members in display order.
func Owners() [2]Owner {
	return [2]Owner{OwnerArtur, OwnerValeria}
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Owner.Known() {
		return ErrInvalidOwner
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return t.Date.Validate()
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
