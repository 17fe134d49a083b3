package devapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Options configures a Server.
type Options struct {
	Username string
	Password string
	TokenTTL time.Duration
	UserID   string           // user whose timeline and spending are seeded
	Clock    func() time.Time // defaults to time.Now
}

// DefaultOptions returns the demo account with a 24 hour token lifetime.
func DefaultOptions() Options {
	return Options{
		Username: DefaultUsername,
		Password: DefaultPassword,
		TokenTTL: 24 * time.Hour,
		UserID:   DefaultUserID,
	}
}

type session struct {
	username string
	expires  time.Time
}

// Server is an in-memory stand-in for the relocation API.
type Server struct {
	opts   Options
	logger *zap.Logger
	now    func() time.Time
	data   *dataset

	mu       sync.Mutex
	username string
	hash     []byte
	tokens   map[string]session
}

// New creates a server with seeded data. The password is stored as a bcrypt
// hash.
func New(opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Username == "" || opts.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.UserID == "" {
		opts.UserID = DefaultUserID
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &Server{
		opts:     opts,
		logger:   logger.Named("devapi"),
		now:      now,
		data:     seed(opts.UserID, now()),
		username: opts.Username,
		hash:     hash,
		tokens:   make(map[string]session),
	}, nil
}

// Handler returns the router with every route mounted under /api.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(s.logger))
	r.Use(Recovery(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.root)
		r.Get("/health", s.health)
		r.Post("/login", s.login)
		r.Post("/forgot-password", s.forgotPassword)

		r.Get("/arizona-property", s.arizonaProperties)
		r.Get("/visa-application", s.visaApplications)
		r.Post("/uk-property-search", s.searchUKProperties)
		r.Get("/remote-jobs", s.remoteJobs)
		r.Get("/chrome-extensions", s.chromeExtensions)
		r.Get("/chrome-extensions/categories", s.extensionCategories)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(s.validToken))

			r.Get("/verify-token", s.verifyToken)
			r.Get("/timeline/{user_id}", s.timeline)
			r.Get("/financial-summary/{user_id}", s.financialSummary)
		})
	})

	return r
}

// issueToken creates a token for username valid for the configured TTL
func (s *Server) issueToken(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = session{username: username, expires: s.now().Add(s.opts.TokenTTL)}
	s.mu.Unlock()
	return token
}

func (s *Server) validToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if !s.now().Before(sess.expires) {
		delete(s.tokens, token)
		return "", false
	}
	return sess.username, true
}

// checkPassword reports whether the credentials match the demo account
func (s *Server) checkPassword(username, password string) bool {
	s.mu.Lock()
	user, hash := s.username, s.hash
	s.mu.Unlock()
	if username != user {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func (s *Server) setPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.hash = hash
	s.mu.Unlock()
	return nil
}

// RevokeAll invalidates every issued token, as if they had all expired.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

// ActiveTokens returns the number of unexpired tokens
func (s *Server) ActiveTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for _, sess := range s.tokens {
		if now.Before(sess.expires) {
			n++
		}
	}
	return n
}
