package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"budget/internal/auth"
	"budget/internal/core"
)

type createTransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Date        string `json:"date"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		AmountCents: tx.Amount.Cents,
		Amount:      formatUnits(tx.Amount.Cents),
		Category:    tx.Category,
		Description: tx.Description,
		Owner:       string(tx.Owner),
		Date:        tx.Date.String(),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponseList(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out
}

// toDraft builds a draft over the request, starting from the same
// defaults a blank input surface would have. Empty fields keep those
// defaults; amount arrives as raw text and is parsed downstream.
func (req createTransactionRequest) toDraft() (core.Draft, error) {
	draft := core.NewDraft()
	if req.Type != "" {
		draft.Type = core.TransactionType(req.Type)
	}
	if req.Owner != "" {
		draft.Owner = core.Owner(req.Owner)
	}
	if req.Date != "" {
		date, err := core.ParseDate(req.Date)
		if err != nil {
			return core.Draft{}, err
		}
		draft.Date = date
	}
	draft.Amount = req.Amount
	draft.Category = req.Category
	draft.Description = req.Description
	return draft, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	txs, err := s.txs.ListTransactions(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponseList(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.editor.Submit(r.Context(), identity.UserID, draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.editor.Delete(r.Context(), identity.UserID, id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
