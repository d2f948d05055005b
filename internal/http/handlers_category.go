package http

import (
	"net/http"
	"time"

	"budget/internal/auth"
	"budget/internal/core"
)

type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

func toCategoryResponseList(cats []core.Category) []categoryResponse {
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = categoryResponse{
			ID:        c.ID,
			Name:      c.Name,
			Type:      string(c.Type),
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	cats, err := s.cats.ListCategories(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if filter := r.URL.Query().Get("type"); filter != "" {
		typ := core.TransactionType(filter)
		if !typ.Valid() {
			writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidType.Error())
			return
		}
		filtered := cats[:0]
		for _, c := range cats {
			if c.Type == typ {
				filtered = append(filtered, c)
			}
		}
		cats = filtered
	}

	writeJSON(w, http.StatusOK, toCategoryResponseList(cats))
}

// handleSeedCategories lets a client retry seeding explicitly, since the
// automatic post-registration run is best-effort and may have failed.
func (s *Server) handleSeedCategories(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if err := s.seeder.SeedDefaultCategories(r.Context(), identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	cats, err := s.cats.ListCategories(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponseList(cats))
}
