// Package auth owns the authenticated-identity lifecycle: registration,
// login, logout, access tokens and the session state machine. It talks
// to the user store and, on registration, kicks off best-effort seeding
// of the new account's default categories.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	"budget/internal/log"
	"budget/internal/store"
)

const minPasswordLength = 8

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Seeder creates a new account's default data. Implemented by the
// ledger's category seeder.
type Seeder interface {
	SeedDefaultCategories(ctx context.Context, userID string) error
}

type Service struct {
	users   store.UserStore
	tokens  *TokenManager
	session *Session
	seeder  Seeder
	logger  *log.Logger

	// seedTimeout bounds the detached seeding call kicked off by Register.
	seedTimeout time.Duration
}

func NewService(users store.UserStore, tokens *TokenManager, session *Session, seeder Seeder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentAuth)
	}
	return &Service{
		users:       users,
		tokens:      tokens,
		session:     session,
		seeder:      seeder,
		logger:      logger,
		seedTimeout: 10 * time.Second,
	}
}

// Result is what a successful register or login hands back.
type Result struct {
	Identity Identity
	Token    string
}

// Register creates an account and returns a fresh token. Seeding the
// default categories is fired off best-effort: its failure is logged on
// its own channel and never fails the registration.
func (s *Service) Register(ctx context.Context, email, password string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := checkmail.ValidateFormat(email); err != nil {
		return Result{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return Result{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, store.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return Result{}, err
	}

	identity := Identity{UserID: user.ID, Email: user.Email}

	if s.seeder != nil {
		// Detached from the request: registration succeeds regardless.
		go func() {
			seedCtx, cancel := context.WithTimeout(context.Background(), s.seedTimeout)
			defer cancel()
			if err := s.seeder.SeedDefaultCategories(seedCtx, user.ID); err != nil {
				s.logger.Error("Default category seeding failed",
					log.FieldOperation, log.OpSeed,
					log.FieldUserID, user.ID,
					log.FieldError, err.Error())
			}
		}()
	}

	token, err := s.tokens.Generate(identity)
	if err != nil {
		return Result{}, fmt.Errorf("generate token: %w", err)
	}

	s.session.SetAuthenticated(identity)
	s.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID,
		log.FieldEmail, user.Email)
	return Result{Identity: identity, Token: token}, nil
}

// Login verifies credentials and returns a fresh token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, ErrInvalidCredentials
	}
	if err != nil {
		return Result{}, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Result{}, ErrInvalidCredentials
	}

	identity := Identity{UserID: user.ID, Email: user.Email}
	token, err := s.tokens.Generate(identity)
	if err != nil {
		return Result{}, fmt.Errorf("generate token: %w", err)
	}

	s.session.SetAuthenticated(identity)
	s.logger.InfoContext(ctx, "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, user.ID)
	return Result{Identity: identity, Token: token}, nil
}

// Logout clears the session state.
func (s *Service) Logout() {
	_, identity := s.session.Current()
	s.session.SetUnauthenticated()
	s.logger.Info("User logged out",
		log.FieldOperation, log.OpLogout,
		log.FieldUserID, identity.UserID)
}

// Session exposes the state machine for observers.
func (s *Service) Session() *Session {
	return s.session
}
