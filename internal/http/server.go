// Package http exposes the budget over a JSON API plus a server-sent
// events stream carrying live query snapshots.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"budget/internal/auth"
	"budget/internal/cache"
	"budget/internal/ledger"
	"budget/internal/livequery"
	"budget/internal/log"
	"budget/internal/store"
)

type Server struct {
	http.Server

	auth      *auth.Service
	tokens    *auth.TokenManager
	editor    *ledger.Editor
	seeder    *ledger.CategorySeeder
	hub       *livequery.Hub
	txs       store.TransactionStore
	cats      store.CategoryStore
	summaries *cache.SummaryCache
	logger    *log.Logger
}

// Deps carries everything the server serves.
type Deps struct {
	Auth      *auth.Service
	Tokens    *auth.TokenManager
	Editor    *ledger.Editor
	Seeder    *ledger.CategorySeeder
	Hub       *livequery.Hub
	Txs       store.TransactionStore
	Cats      store.CategoryStore
	Summaries *cache.SummaryCache
	Logger    *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. The SSE stream endpoint needs write timeouts disabled,
// so only the read side is bounded here.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		auth:      deps.Auth,
		tokens:    deps.Tokens,
		editor:    deps.Editor,
		seeder:    deps.Seeder,
		hub:       deps.Hub,
		txs:       deps.Txs,
		cats:      deps.Cats,
		summaries: deps.Summaries,
		logger:    logger,
	}

	authLimiter := newRateLimiter(20)
	authLimiter.startCleanup(context.Background())

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", handleHealth)
	router.Get("/readyz", handleReady)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.middleware)
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.tokens))

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", s.handleListTransactions)
				r.Post("/", s.handleCreateTransaction)
				r.Delete("/{id}", s.handleDeleteTransaction)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.handleListCategories)
				r.Post("/seed", s.handleSeedCategories)
			})

			r.Get("/dashboard", s.handleDashboard)
			r.Get("/stream", s.handleStream)
		})
	})

	s.Handler = router
	return s
}

// requestLogger logs request start and completion with the request ID
// assigned by the chi middleware.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		s.logger.DebugContext(r.Context(), "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, ww.Status(),
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
