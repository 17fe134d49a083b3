package devapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relocate/tui-go/internal/model"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestServer(t *testing.T) (*Server, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts := DefaultOptions()
	opts.TokenTTL = time.Hour
	opts.Clock = clock.now
	s, err := New(opts, nil)
	require.NoError(t, err)
	return s, clock
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func login(t *testing.T, h http.Handler, password string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/login", model.LoginRequest{Username: DefaultUsername, Password: password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok := decode[model.Token](t, rec)
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Options{Username: "u"}, nil)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name     string
		username string
		password string
		want     int
	}{
		{"valid", DefaultUsername, DefaultPassword, http.StatusOK},
		{"wrong password", DefaultUsername, "nope", http.StatusUnauthorized},
		{"wrong user", "someone", DefaultPassword, http.StatusUnauthorized},
		{"empty", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/login", model.LoginRequest{Username: tt.username, Password: tt.password}, "")
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
				assert.Equal(t, "Incorrect username or password", decode[model.ErrorBody](t, rec).Detail)
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	s, clock := newTestServer(t)
	h := s.Handler()
	token := login(t, h, DefaultPassword)

	rec := do(t, h, http.MethodGet, "/api/verify-token", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, DefaultUsername, body["username"])

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/verify-token", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/verify-token", nil, "forged").Code)

	clock.t = clock.t.Add(time.Hour)
	rec = do(t, h, http.MethodGet, "/api/verify-token", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", decode[model.ErrorBody](t, rec).Detail)
	assert.Zero(t, s.ActiveTokens())
}

func TestRevokeAll(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	token := login(t, h, DefaultPassword)
	require.Equal(t, 1, s.ActiveTokens())

	s.RevokeAll()

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/verify-token", nil, token).Code)
}

func TestForgotPassword(t *testing.T) {
	valid := model.PasswordReset{
		Email:                "user@relocate.com",
		FullName:             "Arizona Relocator",
		VerificationQuestion: "  phoenix ",
		NewPassword:          "NewPass2026!",
	}

	tests := []struct {
		name   string
		mutate func(*model.PasswordReset)
		want   int
	}{
		{"accepted", func(*model.PasswordReset) {}, http.StatusOK},
		{"wrong email", func(r *model.PasswordReset) { r.Email = "USER@relocate.com" }, http.StatusBadRequest},
		{"wrong name", func(r *model.PasswordReset) { r.FullName = "someone else" }, http.StatusBadRequest},
		{"wrong answer", func(r *model.PasswordReset) { r.VerificationQuestion = "Tucson" }, http.StatusBadRequest},
		{"empty new password", func(r *model.PasswordReset) { r.NewPassword = "" }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			h := s.Handler()
			req := valid
			tt.mutate(&req)

			rec := do(t, h, http.MethodPost, "/api/forgot-password", req, "")
			require.Equal(t, tt.want, rec.Code, rec.Body.String())

			if tt.want == http.StatusOK {
				assert.True(t, decode[model.ResetResult](t, rec).EmailSent)
				login(t, h, "NewPass2026!")
				assert.Equal(t, http.StatusUnauthorized,
					do(t, h, http.MethodPost, "/api/login", model.LoginRequest{Username: DefaultUsername, Password: DefaultPassword}, "").Code)
			} else {
				login(t, h, DefaultPassword)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	s, clock := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[model.Health](t, rec)
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, clock.t.Equal(h.Timestamp))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestProtectedRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	for _, path := range []string{"/api/timeline/demo-user-123", "/api/financial-summary/demo-user-123"} {
		assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, path, nil, "").Code, path)
	}
}

func TestTimelineSortedByTargetDate(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	token := login(t, h, DefaultPassword)

	rec := do(t, h, http.MethodGet, "/api/timeline/"+DefaultUserID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	ms := decode[[]model.Milestone](t, rec)
	require.Len(t, ms, 3)
	for i := 1; i < len(ms); i++ {
		assert.LessOrEqual(t, ms[i-1].TargetDate, ms[i].TargetDate)
	}

	rec = do(t, h, http.MethodGet, "/api/timeline/nobody", nil, token)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestFinancialSummary(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	token := login(t, h, DefaultPassword)

	rec := do(t, h, http.MethodGet, "/api/financial-summary/"+DefaultUserID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[model.FinancialSummary](t, rec)

	assert.InDelta(t, 4016, sum.TotalSpentUSD, 0.001)
	assert.InDelta(t, 3155, sum.TotalSpentGBP, 0.001)
	assert.Equal(t, 2, sum.ByCategory["visa"].Count)
	assert.Equal(t, 1, sum.ByCategory["other"].Count)
}

func TestSearchUKProperties(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name string
		q    any
		want int
	}{
		{"no body", nil, 3},
		{"empty criteria", model.PropertySearch{}, 3},
		{"region", model.PropertySearch{Region: "london"}, 1},
		{"detached under 500k", model.PropertySearch{PropertyType: "detached", MaxPrice: ptr(500000.0)}, 1},
		{"at least 3 beds", model.PropertySearch{MinBedrooms: ptr(3)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/uk-property-search", tt.q, "")
			require.Equal(t, http.StatusOK, rec.Code)
			res := decode[model.PropertyResults](t, rec)
			assert.Len(t, res.Properties, tt.want)
			assert.Equal(t, tt.want, res.TotalCount)
		})
	}
}

func TestRemoteJobs(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name      string
		query     string
		wantJobs  int
		wantTotal int
		wantPage  int
	}{
		{"defaults", "", 3, 3, 1},
		{"paged", "?page=2&limit=2", 1, 3, 2},
		{"past end", "?page=5&limit=2", 0, 3, 5},
		{"search", "?search=ENGINEER", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/remote-jobs"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			page := decode[model.JobPage](t, rec)
			assert.Len(t, page.Jobs, tt.wantJobs)
			assert.NotNil(t, page.Jobs)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
		})
	}
}

func TestChromeExtensions(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	all := decode[[]model.ChromeExtension](t, do(t, h, http.MethodGet, "/api/chrome-extensions", nil, ""))
	assert.Len(t, all, 4)

	jobs := decode[[]model.ChromeExtension](t, do(t, h, http.MethodGet, "/api/chrome-extensions?category=job_search", nil, ""))
	require.Len(t, jobs, 1)
	assert.Equal(t, "LinkedIn Job Search Pro", jobs[0].Name)

	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, h, http.MethodGet, "/api/chrome-extensions?category=games", nil, "").Code)

	cats := decode[map[string]string](t, do(t, h, http.MethodGet, "/api/chrome-extensions/categories", nil, ""))
	assert.Equal(t, "Relocation Helpers", cats["relocation"])
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodOptions, "/api/login", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("USERNAME", "ignored")
	t.Setenv("DEVAPI_PORT", "9100")
	t.Setenv("DEVAPI_TOKEN_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, DefaultUsername, cfg.Username)
	assert.Equal(t, 30*time.Minute, cfg.Options().TokenTTL)

	t.Setenv("DEVAPI_PORT", "0")
	_, err = LoadConfig()
	assert.Error(t, err)
}
