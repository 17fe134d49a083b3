package screens

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/devapi"
	"github.com/relocate/tui-go/internal/model"
	"github.com/relocate/tui-go/internal/views"
)

type tokenSource string

func (t tokenSource) Credential() (string, bool) { return string(t), t != "" }

func newLoader(t *testing.T, authenticated bool) *Loader {
	t.Helper()
	srv, err := devapi.New(devapi.DefaultOptions(), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.New(api.Options{BaseURL: ts.URL + "/api", Timeout: 5 * time.Second})
	if authenticated {
		tok, err := client.Login(context.Background(), devapi.DefaultUsername, devapi.DefaultPassword)
		require.NoError(t, err)
		client.UseCredentials(tokenSource(tok))
	}

	return NewLoader(Deps{Source: client, Registry: views.Default(), UserID: devapi.DefaultUserID}, nil)
}

func TestEveryRegisteredViewHasAProvider(t *testing.T) {
	deps := Deps{Source: failingSource{}, Registry: views.Default()}
	for _, d := range views.Default().All() {
		p, err := NewProvider(d.ID, deps)
		require.NoError(t, err, d.ID)
		assert.Equal(t, d.ID, p.ViewID())
	}
}

func TestNewProviderErrors(t *testing.T) {
	_, err := NewProvider("visa", Deps{})
	assert.Error(t, err)

	_, err = NewProvider("dashboard", Deps{Source: failingSource{}})
	assert.Error(t, err)

	_, err = NewProvider("settings", Deps{Source: failingSource{}})
	assert.Error(t, err)
}

func TestLoadScreens(t *testing.T) {
	l := newLoader(t, true)

	tests := []struct {
		view        string
		wantTitle   string
		wantSummary string
		wantRows    int
		wantPrimary string
	}{
		{"dashboard", "Dashboard", "API healthy", 7, "Arizona Property"},
		{"arizona", "Arizona Property", "1 property tracked", 1, "4821 E Camelback Rd, Phoenix 85018"},
		{"visa", "UK Visa", "1 application", 1, "● Spouse Partner: Arizona Relocator"},
		{"uk-property", "UK Property Search", "3 properties found", 3, "Modern 3-bedroom house in London · £650,000"},
		{"work-search", "Remote Work Search", "3 jobs", 3, "Senior Software Engineer at TechCorp UK"},
		{"chrome-extensions", "Chrome Extensions", "4 extensions in 5 categories", 4, "UK Visa Tracker (Immigration Tracking)"},
		{"timeline", "Master Timeline", "1 of 3 milestones complete", 3, "✓ Open UK bank account"},
		{"financial", "Financial Tracker", "Spent $4,016 (£3,155)", 3, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			c, err := l.Load(context.Background(), tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, c.Title)
			assert.Contains(t, c.Summary, tt.wantSummary)
			require.Len(t, c.Rows, tt.wantRows)
			assert.Equal(t, tt.wantPrimary, c.Rows[0].Primary)
		})
	}
}

func TestLoadProtectedScreenUnauthenticated(t *testing.T) {
	l := newLoader(t, false)

	_, err := l.Load(context.Background(), "timeline")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	_, err = l.Load(context.Background(), "visa")
	assert.NoError(t, err, "public endpoints need no credential")
}

func TestLoadUnknownView(t *testing.T) {
	l := NewLoader(Deps{Source: failingSource{}, Registry: views.Default()}, nil)

	c, err := l.Load(context.Background(), "settings")
	require.NoError(t, err)
	assert.Equal(t, views.UnknownTitle, c.Title)
	assert.Empty(t, c.Rows)
}

func TestDashboardSurvivesHealthFailure(t *testing.T) {
	l := NewLoader(Deps{Source: failingSource{}, Registry: views.Default()}, nil)

	c, err := l.Load(context.Background(), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, c.Summary, "API unreachable")
	assert.Len(t, c.Rows, views.Default().Len()-1)
}

func TestLoadPropagatesSourceError(t *testing.T) {
	l := NewLoader(Deps{Source: failingSource{}, Registry: views.Default()}, nil)

	_, err := l.Load(context.Background(), "arizona")
	assert.ErrorIs(t, err, errDown)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Spouse Partner", humanize("spouse_partner"))
	assert.Equal(t, "", humanize(""))
	assert.Equal(t, "£1,234,567", money("£", 1234567))
	assert.Equal(t, "1 job", plural(1, "job", "jobs"))
	assert.Equal(t, "0 jobs", plural(0, "job", "jobs"))
}

var errDown = errors.New("service down")

type failingSource struct{}

func (failingSource) Health(context.Context) (*model.Health, error) { return nil, errDown }
func (failingSource) ArizonaProperties(context.Context) ([]model.ArizonaProperty, error) {
	return nil, errDown
}
func (failingSource) VisaApplications(context.Context) ([]model.VisaApplication, error) {
	return nil, errDown
}
func (failingSource) SearchUKProperties(context.Context, model.PropertySearch) (*model.PropertyResults, error) {
	return nil, errDown
}
func (failingSource) RemoteJobs(context.Context, api.JobQuery) (*model.JobPage, error) {
	return nil, errDown
}
func (failingSource) ChromeExtensions(context.Context, string) ([]model.ChromeExtension, error) {
	return nil, errDown
}
func (failingSource) ExtensionCategories(context.Context) (map[string]string, error) {
	return nil, errDown
}
func (failingSource) Timeline(context.Context, string) ([]model.Milestone, error) {
	return nil, errDown
}
func (failingSource) FinancialSummary(context.Context, string) (*model.FinancialSummary, error) {
	return nil, errDown
}
