package core

// OwnerBalance holds the aggregated figures for one household member.
type OwnerBalance struct {
	Owner   Owner
	Income  Money
	Expense Money
	Balance Money
}

// Summary is the derived view over a transaction snapshot: per-owner
// figures plus the household totals.
type Summary struct {
	Owners  []OwnerBalance
	Income  Money
	Expense Money
	Balance Money
}

// Summarize computes per-owner and total balances from a transaction
// snapshot. It is pure and runs fresh on every snapshot; there is no
// incremental state.
//
// A transaction whose owner is not one of the two household members is
// excluded from the per-owner groups and from the totals, so the sum of
// the per-owner balances always equals the total. An empty snapshot
// yields all zeros.
func Summarize(txs []Transaction) Summary {
	owners := Owners()
	byOwner := make(map[Owner]*OwnerBalance, len(owners))
	s := Summary{Owners: make([]OwnerBalance, len(owners))}
	for i, o := range owners {
		s.Owners[i] = OwnerBalance{Owner: o}
		byOwner[o] = &s.Owners[i]
	}

	for _, tx := range txs {
		ob, ok := byOwner[tx.Owner]
		if !ok {
			continue
		}
		switch tx.Type {
		case TypeIncome:
			ob.Income.Cents += tx.Amount.Cents
		case TypeExpense:
			ob.Expense.Cents += tx.Amount.Cents
		}
	}

	for i := range s.Owners {
		ob := &s.Owners[i]
		ob.Balance.Cents = ob.Income.Cents - ob.Expense.Cents
		s.Income.Cents += ob.Income.Cents
		s.Expense.Cents += ob.Expense.Cents
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}
