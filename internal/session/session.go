// package session owns the authentication token pair and the derived
// session status
package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/shared"
	"golang.org/x/oauth2"
)

// Status is the client's belief, derived from token presence, that the user
// is authenticated. There is no client-side signature or expiry check:
// presence implies valid, and the backend is the arbiter on actual requests.
type Status int

const (
	// Uninitialized exists only before Initialize has run.
	Uninitialized Status = iota
	Anonymous
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// TokenStore is the durable storage for the token pair.
// Load returns (nil, nil) when no complete pair is persisted.
type TokenStore interface {
	Load() (*models.TokenPair, error)
	Save(pair models.TokenPair) error
	Clear() error
}

// Store is the single source of truth for whether the user is authenticated.
//
// It is safe for concurrent use: the TUI event loop mutates it while the
// HTTP transport reads the token from command goroutines.
type Store struct {
	mu     sync.Mutex
	tokens TokenStore
	status Status
	pair   *models.TokenPair
	logger *log.Logger
}

var _ oauth2.TokenSource = (*Store)(nil)

// NewStore creates a Store over the given durable storage.
// The store reports Uninitialized until Initialize is called.
func NewStore(tokens TokenStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{tokens: tokens, logger: logger}
}

// Initialize runs the one-time startup check. Any storage failure is treated
// as "no token present": the store always lands on Authenticated or
// Anonymous, never Uninitialized, so the UI can never hang on startup.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.tokens.Load()
	if err != nil {
		// Recovery, not reporting: a broken store means no session.
		s.logger.Warn("session storage unreadable, starting anonymous", "error", err)
		s.status = Anonymous
		s.pair = nil
		return
	}

	if pair != nil && pair.Complete() {
		s.status = Authenticated
		s.pair = pair
		s.logger.Debug("restored session from storage")
		return
	}

	s.status = Anonymous
	s.pair = nil
}

// Login persists the token pair and marks the session authenticated.
// The status change is visible to all readers as soon as Login returns.
func (s *Store) Login(accessToken, refreshToken string) error {
	pair := models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}
	if !pair.Complete() {
		return fmt.Errorf("%w: both access and refresh tokens are required", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.Save(pair); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.pair = &pair
	s.status = Authenticated
	s.logger.Debug("session established")
	return nil
}

// Logout clears durable storage and marks the session anonymous. The status
// transition happens even when the storage delete fails; in-memory state is
// authoritative for the rest of the process lifetime.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", "error", err)
	}

	s.pair = nil
	s.status = Anonymous
	s.logger.Debug("session cleared")
}

// Status is a pure read of the current session status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Token implements [oauth2.TokenSource] so the HTTP layer attaches the
// bearer credential uniformly. Returns [shared.ErrNotAuthenticated] when no
// session is held.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Authenticated || s.pair == nil {
		return nil, shared.ErrNotAuthenticated
	}

	return &oauth2.Token{
		AccessToken:  s.pair.AccessToken,
		RefreshToken: s.pair.RefreshToken,
		TokenType:    "Bearer",
	}, nil
}
