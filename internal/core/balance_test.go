package core

import "testing"

func tx(owner Owner, typ TransactionType, cents int64) Transaction {
	return Transaction{
		Type:     typ,
		Amount:   Money{Cents: cents},
		Category: "Другое",
		Owner:    owner,
		UserID:   "u1",
		Date:     NewDate(2026, 9, 1),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
		t.Errorf("empty snapshot: totals = %+v, want all zeros", s)
	}
	if len(s.Owners) != 2 {
		t.Fatalf("owners = %d, want 2", len(s.Owners))
	}
	for _, ob := range s.Owners {
		if ob.Income.Cents != 0 || ob.Expense.Cents != 0 || ob.Balance.Cents != 0 {
			t.Errorf("owner %s: %+v, want zeros", ob.Owner, ob)
		}
	}
}

func TestSummarizePartitionsByOwnerAndType(t *testing.T) {
	s := Summarize([]Transaction{
		tx(OwnerArtur, TypeIncome, 500000),
		tx(OwnerArtur, TypeExpense, 120000),
		tx(OwnerValeria, TypeIncome, 300000),
		tx(OwnerValeria, TypeExpense, 80000),
		tx(OwnerValeria, TypeExpense, 20000),
	})

	artur, valeria := s.Owners[0], s.Owners[1]
	if artur.Owner != OwnerArtur || valeria.Owner != OwnerValeria {
		t.Fatalf("owner order = %s, %s", artur.Owner, valeria.Owner)
	}
	if artur.Income.Cents != 500000 || artur.Expense.Cents != 120000 || artur.Balance.Cents != 380000 {
		t.Errorf("artur = %+v", artur)
	}
	if valeria.Income.Cents != 300000 || valeria.Expense.Cents != 100000 || valeria.Balance.Cents != 200000 {
		t.Errorf("valeria = %+v", valeria)
	}
	if s.Balance.Cents != 580000 {
		t.Errorf("total balance = %d, want 580000", s.Balance.Cents)
	}
}

// The sum of the per-owner balances must always equal the total balance,
// including when transactions with an unattributable owner are present:
// those are excluded from both sides.
func TestSummarizeTotalMatchesOwnerSum(t *testing.T) {
	snapshots := [][]Transaction{
		nil,
		{tx(OwnerArtur, TypeExpense, 120000)},
		{tx(OwnerArtur, TypeIncome, 1), tx(OwnerValeria, TypeExpense, 2)},
		{tx(OwnerArtur, TypeIncome, 100), tx("stranger", TypeIncome, 99999)},
	}

	for i, snap := range snapshots {
		s := Summarize(snap)
		var ownerSum int64
		for _, ob := range s.Owners {
			ownerSum += ob.Balance.Cents
		}
		if ownerSum != s.Balance.Cents {
			t.Errorf("snapshot %d: owner sum %d != total %d", i, ownerSum, s.Balance.Cents)
		}
	}
}

func TestSummarizeExcludesUnknownOwner(t *testing.T) {
	s := Summarize([]Transaction{
		tx(OwnerArtur, TypeIncome, 1000),
		tx("stranger", TypeExpense, 500),
	})
	if s.Balance.Cents != 1000 {
		t.Errorf("total = %d, want 1000 (unknown owner excluded)", s.Balance.Cents)
	}
	if s.Expense.Cents != 0 {
		t.Errorf("expense total = %d, want 0", s.Expense.Cents)
	}
}

// Mirrors the first-expense flow: a fresh account, a single 1200.00
// expense for artur in "Продукты".
func TestSummarizeFirstExpense(t *testing.T) {
	first := tx(OwnerArtur, TypeExpense, 120000)
	first.Category = "Продукты"

	s := Summarize([]Transaction{first})
	artur := s.Owners[0]
	if artur.Expense.Cents != 120000 {
		t.Errorf("artur expenses = %d, want 120000", artur.Expense.Cents)
	}
	if artur.Balance.Cents != -120000 {
		t.Errorf("artur balance = %d, want -120000", artur.Balance.Cents)
	}
	if s.Balance.Cents != -120000 {
		t.Errorf("total balance = %d, want -120000", s.Balance.Cents)
	}
}
