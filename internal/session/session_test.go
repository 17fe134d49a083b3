package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/relocate/tui-go/internal/credstore"
)

// memStore is an in-memory CredentialStore
type memStore struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (s *memStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return "", s.loadErr
	}
	if s.token == "" {
		return "", credstore.ErrNotFound
	}
	return s.token, nil
}

func (s *memStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.token = ""
	return nil
}

// fakeAuth accepts one username/password pair and one token
type fakeAuth struct {
	user, pass string
	issue      string
	valid      string
	loginErr   error
	verifyErr  error

	logins   int
	verifies []string
}

func (a *fakeAuth) Login(_ context.Context, username, password string) (string, error) {
	a.logins++
	if a.loginErr != nil {
		return "", a.loginErr
	}
	if username != a.user || password != a.pass {
		return "", errors.New("HTTP 401: Incorrect username or password")
	}
	return a.issue, nil
}

func (a *fakeAuth) VerifyToken(_ context.Context, token string) error {
	a.verifies = append(a.verifies, token)
	if a.verifyErr != nil {
		return a.verifyErr
	}
	if token != a.valid {
		return errors.New("HTTP 401: Could not validate credentials")
	}
	return nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{user: "u", pass: "good", issue: "fresh-token", valid: "fresh-token"}
}

func TestNewManagerStartsInitializing(t *testing.T) {
	m := NewManager(&memStore{}, newFakeAuth(), nil)

	assert.Equal(t, StatusInitializing, m.Status())
	assert.True(t, m.Status().Loading())
	_, ok := m.Credential()
	assert.False(t, ok)
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		loadErr     error
		verifyErr   error
		want        Status
		wantStored  string
		wantVerify  bool
		wantCleared bool
	}{
		{
			name: "no stored credential",
			want: StatusUnauthenticated,
		},
		{
			name:       "valid stored credential",
			stored:     "fresh-token",
			want:       StatusAuthenticated,
			wantStored: "fresh-token",
			wantVerify: true,
		},
		{
			name:        "expired stored credential",
			stored:      "stale-token",
			want:        StatusUnauthenticated,
			wantVerify:  true,
			wantCleared: true,
		},
		{
			name:        "network failure during verify",
			stored:      "fresh-token",
			verifyErr:   errors.New("dial tcp: connection refused"),
			want:        StatusUnauthenticated,
			wantVerify:  true,
			wantCleared: true,
		},
		{
			name:    "unreadable store",
			loadErr: errors.New("permission denied"),
			want:    StatusUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{token: tt.stored, loadErr: tt.loadErr}
			auth := newFakeAuth()
			auth.verifyErr = tt.verifyErr
			m := NewManager(store, auth, zap.NewNop())

			got := m.Initialize(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, m.Status())
			assert.Equal(t, tt.wantStored, store.token)
			assert.Equal(t, tt.wantVerify, len(auth.verifies) == 1)
			assert.Equal(t, tt.wantCleared, store.clears > 0)
			if tt.wantVerify {
				assert.Equal(t, tt.stored, auth.verifies[0])
			}
		})
	}
}

func TestInitializeFailedVerifyDetachesCredential(t *testing.T) {
	store := &memStore{token: "stale-token"}
	m := NewManager(store, newFakeAuth(), nil)

	m.Initialize(context.Background())

	_, ok := m.Credential()
	assert.False(t, ok)
	_, err := store.Load()
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestLoginSuccess(t *testing.T) {
	store := &memStore{}
	m := NewManager(store, newFakeAuth(), nil)
	m.Initialize(context.Background())

	ok := m.Login(context.Background(), "u", "good")

	require.True(t, ok)
	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "fresh-token", store.token)
	tok, attached := m.Credential()
	assert.True(t, attached)
	assert.Equal(t, "fresh-token", tok)
}

func TestLoginRejectedLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Manager, store *memStore)
		want  Status
	}{
		{
			name:  "from unauthenticated",
			setup: func(m *Manager, _ *memStore) { m.Initialize(context.Background()) },
			want:  StatusUnauthenticated,
		},
		{
			name: "from authenticated",
			setup: func(m *Manager, _ *memStore) {
				m.Initialize(context.Background())
				require.True(t, m.Login(context.Background(), "u", "good"))
			},
			want: StatusAuthenticated,
		},
		{
			name:  "before initialize",
			setup: func(*Manager, *memStore) {},
			want:  StatusInitializing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			auth := newFakeAuth()
			m := NewManager(store, auth, nil)
			tt.setup(m, store)
			storedBefore := store.token
			savesBefore := store.saves

			ok := m.Login(context.Background(), "u", "bad")

			assert.False(t, ok)
			assert.Equal(t, tt.want, m.Status())
			assert.Equal(t, storedBefore, store.token)
			assert.Equal(t, savesBefore, store.saves)
		})
	}
}

func TestLoginTransportFailure(t *testing.T) {
	auth := newFakeAuth()
	auth.loginErr = errors.New("context deadline exceeded")
	m := NewManager(&memStore{}, auth, nil)
	m.Initialize(context.Background())

	assert.False(t, m.Login(context.Background(), "u", "good"))
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Equal(t, 1, auth.logins, "no retry at this layer")
}

func TestLoginEmptyTokenIsFailure(t *testing.T) {
	auth := newFakeAuth()
	auth.issue = ""
	m := NewManager(&memStore{}, auth, nil)
	m.Initialize(context.Background())

	assert.False(t, m.Login(context.Background(), "u", "good"))
	assert.Equal(t, StatusUnauthenticated, m.Status())
}

func TestLoginPersistFailureStillAuthenticates(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &memStore{saveErr: errors.New("disk full")}
	m := NewManager(store, newFakeAuth(), zap.New(core))

	assert.True(t, m.Login(context.Background(), "u", "good"))
	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, 1, logs.FilterMessage("persist credential").Len())
}

func TestLogout(t *testing.T) {
	store := &memStore{}
	m := NewManager(store, newFakeAuth(), nil)
	require.True(t, m.Login(context.Background(), "u", "good"))

	m.Logout()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, store.token)
	_, ok := m.Credential()
	assert.False(t, ok)

	// idempotent
	m.Logout()
	assert.Equal(t, StatusUnauthenticated, m.Status())
}

func TestCycleLoginLogout(t *testing.T) {
	m := NewManager(&memStore{}, newFakeAuth(), nil)
	m.Initialize(context.Background())

	for i := 0; i < 3; i++ {
		require.True(t, m.Login(context.Background(), "u", "good"))
		assert.True(t, m.Authenticated())
		m.Logout()
		assert.False(t, m.Authenticated())
	}
}

func TestLoginNeverLogsPassword(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := NewManager(&memStore{}, newFakeAuth(), zap.New(core))

	m.Login(context.Background(), "u", "bad")
	m.Login(context.Background(), "u", "good")

	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			assert.NotEqual(t, "bad", v)
			assert.NotEqual(t, "good", v)
			assert.NotEqual(t, "fresh-token", v)
		}
	}
}

// blockingAuth lets a test interleave a login with an in-flight verify
type blockingAuth struct {
	*fakeAuth
	release chan struct{}
	entered chan struct{}
}

func (a *blockingAuth) VerifyToken(ctx context.Context, token string) error {
	close(a.entered)
	<-a.release
	return errors.New("expired")
}

func TestStaleVerifyResultDiscarded(t *testing.T) {
	auth := &blockingAuth{fakeAuth: newFakeAuth(), release: make(chan struct{}), entered: make(chan struct{})}
	store := &memStore{token: "old-token"}
	m := NewManager(store, auth, nil)

	done := make(chan Status)
	go func() { done <- m.Initialize(context.Background()) }()

	<-auth.entered
	assert.Equal(t, StatusVerifying, m.Status())
	_, ok := m.Credential()
	assert.False(t, ok, "unverified credential must not be attached")

	require.True(t, m.Login(context.Background(), "u", "good"))
	close(auth.release)

	assert.Equal(t, StatusAuthenticated, <-done)
	assert.Equal(t, "fresh-token", store.token)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "initializing", StatusInitializing.String())
	assert.Equal(t, "verifying", StatusVerifying.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "unauthenticated", StatusUnauthenticated.String())
	assert.Equal(t, "unknown", Status(99).String())
}
