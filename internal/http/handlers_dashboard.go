package http

import (
	"net/http"

	"budget/internal/auth"
	"budget/internal/core"
	"budget/internal/log"
)

type ownerBalanceResponse struct {
	Owner        string `json:"owner"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
}

type summaryResponse struct {
	Owners       []ownerBalanceResponse `json:"owners"`
	IncomeCents  int64                  `json:"income_cents"`
	ExpenseCents int64                  `json:"expense_cents"`
	BalanceCents int64                  `json:"balance_cents"`
	Balance      string                 `json:"balance"`
}

func toSummaryResponse(sum core.Summary) summaryResponse {
	out := summaryResponse{
		Owners:       make([]ownerBalanceResponse, len(sum.Owners)),
		IncomeCents:  sum.Income.Cents,
		ExpenseCents: sum.Expense.Cents,
		BalanceCents: sum.Balance.Cents,
		Balance:      formatUnits(sum.Balance.Cents),
	}
	for i, ob := range sum.Owners {
		out.Owners[i] = ownerBalanceResponse{
			Owner:        string(ob.Owner),
			IncomeCents:  ob.Income.Cents,
			ExpenseCents: ob.Expense.Cents,
			BalanceCents: ob.Balance.Cents,
			Balance:      formatUnits(ob.Balance.Cents),
		}
	}
	return out
}

// handleDashboard serves the per-owner and total balances, memoized per
// user until the next transaction write.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if s.summaries != nil {
		if sum, ok := s.summaries.Get(identity.UserID); ok {
			s.logger.DebugContext(r.Context(), "Dashboard cache hit",
				log.FieldUserID, identity.UserID)
			writeJSON(w, http.StatusOK, toSummaryResponse(sum))
			return
		}
	}

	txs, err := s.txs.ListTransactions(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sum := core.Summarize(txs)
	if s.summaries != nil {
		s.summaries.Put(identity.UserID, sum)
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}
