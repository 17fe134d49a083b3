package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/relocate/tui-go/internal/credstore"
)

// CredentialStore persists the raw credential string
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Authenticator is the remote side of the session: credential exchange and
// verification. The credential is always passed explicitly.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(ctx context.Context, token string) error
}

// Manager owns the session credential and its status. It is the only writer
// of either; all remote failures are absorbed into state transitions.
type Manager struct {
	mu     sync.RWMutex
	store  CredentialStore
	auth   Authenticator
	logger *zap.Logger

	token  string
	status Status
}

// NewManager creates a manager in StatusInitializing.
func NewManager(store CredentialStore, auth Authenticator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:  store,
		auth:   auth,
		logger: logger.Named("session"),
		status: StatusInitializing,
	}
}

// Initialize reads the stored credential and, if there is one, verifies it
// against the remote API. It returns the settled status.
func (m *Manager) Initialize(ctx context.Context) Status {
	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.Warn("read stored credential", zap.Error(err))
		}
		m.mu.Lock()
		m.token = ""
		m.setStatus(StatusUnauthenticated)
		m.mu.Unlock()
		return StatusUnauthenticated
	}

	m.mu.Lock()
	m.token = token
	m.setStatus(StatusVerifying)
	m.mu.Unlock()

	m.verify(ctx, token)
	return m.Status()
}

// verify settles a Verifying session. A stale outcome (the credential changed
// while the call was in flight) is discarded.
func (m *Manager) verify(ctx context.Context, token string) {
	err := m.auth.VerifyToken(ctx, token)

	m.mu.Lock()
	if m.token != token || m.status != StatusVerifying {
		m.mu.Unlock()
		m.logger.Debug("discarding stale verification result")
		return
	}
	defer m.mu.Unlock()

	if err == nil {
		m.setStatus(StatusAuthenticated)
		return
	}
	m.logger.Warn("token verification failed", zap.Error(err))
	m.clearLocked()
}

// Login exchanges credentials for a token. On failure the session is left
// exactly as it was; no retry is attempted.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		return false
	}
	if token == "" {
		m.logger.Warn("login returned empty token", zap.String("username", username))
		return false
	}

	m.mu.Lock()
	if err := m.store.Save(token); err != nil {
		m.logger.Warn("persist credential", zap.Error(err))
	}
	m.token = token
	m.setStatus(StatusAuthenticated)
	m.mu.Unlock()

	m.logger.Info("logged in", zap.String("username", username))
	return true
}

// Logout discards the credential and detaches it from future requests.
// Safe to call in any state.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear stored credential", zap.Error(err))
	}
	m.token = ""
	m.setStatus(StatusUnauthenticated)
}

// Status returns the latest committed status
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Authenticated reports whether requests may be authorized
func (m *Manager) Authenticated() bool {
	return m.Status() == StatusAuthenticated
}

// Credential returns the token to attach to outgoing requests. It is only
// handed out while Authenticated; a token still being verified is withheld.
func (m *Manager) Credential() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status != StatusAuthenticated || m.token == "" {
		return "", false
	}
	return m.token, true
}

// setStatus records a transition; callers hold m.mu.
func (m *Manager) setStatus(next Status) {
	if m.status == next {
		return
	}
	m.logger.Debug("status transition",
		zap.Stringer("from", m.status),
		zap.Stringer("to", next),
	)
	m.status = next
}
