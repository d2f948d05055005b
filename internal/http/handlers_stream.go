package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"budget/internal/auth"
	"budget/internal/core"
	"budget/internal/log"
)

// handleStream serves live query snapshots over server-sent events.
// Three event types flow on one connection: "transactions" and
// "categories" carry full replacement snapshots, "summary" carries the
// balances recomputed from each transaction snapshot. A subscription
// error ends the stream with a terminal "error" event; the client
// reconnects to resubscribe.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	txSub, err := s.hub.SubscribeTransactions(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer txSub.Close()

	catSub, err := s.hub.SubscribeCategories(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer catSub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.logger.InfoContext(r.Context(), "Stream opened",
		log.FieldOperation, log.OpSubscribe,
		log.FieldUserID, identity.UserID)

	for {
		select {
		case snap, ok := <-txSub.Snapshots():
			if !ok {
				s.endStream(w, flusher, r, identity.UserID, txSub.Err())
				return
			}
			writeEvent(w, flusher, "transactions", toTransactionResponseList(snap))
			writeEvent(w, flusher, "summary", toSummaryResponse(core.Summarize(snap)))

		case snap, ok := <-catSub.Snapshots():
			if !ok {
				s.endStream(w, flusher, r, identity.UserID, catSub.Err())
				return
			}
			writeEvent(w, flusher, "categories", toCategoryResponseList(snap))

		case <-r.Context().Done():
			s.logger.DebugContext(r.Context(), "Stream client disconnected",
				log.FieldUserID, identity.UserID)
			return
		}
	}
}

func (s *Server) endStream(w http.ResponseWriter, flusher http.Flusher, r *http.Request, userID string, err error) {
	if err == nil {
		return
	}
	s.logger.ErrorContext(r.Context(), "Stream terminated",
		log.FieldUserID, userID,
		log.FieldError, err.Error())
	writeEvent(w, flusher, "error", errorResponse{Error: "subscription lost, reconnect to resume"})
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}
