package core

import (
	"errors"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		Type:     TypeExpense,
		Amount:   Money{Cents: 1500},
		Category: "Продукты",
		Owner:    OwnerArtur,
		UserID:   "u1",
		Date:     NewDate(2026, 9, 1),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"unknown owner", func(tx *Transaction) { tx.Owner = "guest" }, ErrInvalidOwner},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -1 }, ErrInvalidAmount},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	c := Category{Name: "Зарплата", Type: TypeIncome, UserID: "u1"}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	c.Name = ""
	if err := c.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Validate() = %v, want %v", err, ErrEmptyName)
	}

	c = Category{Name: "X", Type: "neither"}
	if err := c.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidType)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2026-09-01" {
		t.Errorf("String() = %q, want 2026-09-01", d.String())
	}

	if _, err := ParseDate("01.09.2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate() = %v, want %v", err, ErrInvalidDate)
	}
}

func TestOwnerKnown(t *testing.T) {
	if !OwnerArtur.Known() || !OwnerValeria.Known() {
		t.Error("household members must be known owners")
	}
	if Owner("somebody").Known() {
		t.Error("arbitrary owner must not be known")
	}
}
