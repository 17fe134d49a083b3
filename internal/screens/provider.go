package screens

import (
	"context"
	"fmt"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/model"
	"github.com/relocate/tui-go/internal/views"
)

// Source is the read side of the relocation API
type Source interface {
	Health(ctx context.Context) (*model.Health, error)
	ArizonaProperties(ctx context.Context) ([]model.ArizonaProperty, error)
	VisaApplications(ctx context.Context) ([]model.VisaApplication, error)
	SearchUKProperties(ctx context.Context, q model.PropertySearch) (*model.PropertyResults, error)
	RemoteJobs(ctx context.Context, q api.JobQuery) (*model.JobPage, error)
	ChromeExtensions(ctx context.Context, category string) ([]model.ChromeExtension, error)
	ExtensionCategories(ctx context.Context) (map[string]string, error)
	Timeline(ctx context.Context, userID string) ([]model.Milestone, error)
	FinancialSummary(ctx context.Context, userID string) (*model.FinancialSummary, error)
}

// Row is one line of screen content
type Row struct {
	Primary   string
	Secondary string
}

// Content is what a screen displays
type Content struct {
	Title   string
	Summary string
	Rows    []Row
}

// Provider loads the content for one view
type Provider interface {
	// ViewID returns the registry id this provider serves
	ViewID() string

	// Load fetches fresh content
	Load(ctx context.Context) (Content, error)
}

// Deps are the collaborators providers read from
type Deps struct {
	Source   Source
	Registry *views.Registry
	UserID   string
}

type funcProvider struct {
	id   string
	load func(ctx context.Context) (Content, error)
}

func (p funcProvider) ViewID() string                            { return p.id }
func (p funcProvider) Load(ctx context.Context) (Content, error) { return p.load(ctx) }

// NewProvider creates a provider for the given view id
func NewProvider(viewID string, d Deps) (Provider, error) {
	if d.Source == nil {
		return nil, fmt.Errorf("source is required")
	}

	var load func(ctx context.Context) (Content, error)
	switch viewID {
	case "dashboard":
		if d.Registry == nil {
			return nil, fmt.Errorf("dashboard requires a registry")
		}
		load = func(ctx context.Context) (Content, error) { return dashboard(ctx, d.Source, d.Registry) }
	case "arizona":
		load = func(ctx context.Context) (Content, error) { return arizona(ctx, d.Source) }
	case "visa":
		load = func(ctx context.Context) (Content, error) { return visa(ctx, d.Source) }
	case "uk-property":
		load = func(ctx context.Context) (Content, error) { return ukProperty(ctx, d.Source) }
	case "work-search":
		load = func(ctx context.Context) (Content, error) { return workSearch(ctx, d.Source) }
	case "chrome-extensions":
		load = func(ctx context.Context) (Content, error) { return extensions(ctx, d.Source) }
	case "timeline":
		load = func(ctx context.Context) (Content, error) { return timeline(ctx, d.Source, d.UserID) }
	case "financial":
		load = func(ctx context.Context) (Content, error) { return financial(ctx, d.Source, d.UserID) }
	default:
		return nil, fmt.Errorf("no screen for view %q", viewID)
	}
	return funcProvider{id: viewID, load: load}, nil
}
