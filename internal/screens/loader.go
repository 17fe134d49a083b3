package screens

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Loader resolves a view id to its provider and loads it. Providers are
// created on first use.
type Loader struct {
	deps   Deps
	logger *zap.Logger

	mu        sync.Mutex
	providers map[string]Provider
}

// NewLoader creates a loader over d
func NewLoader(d Deps, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		deps:      d,
		logger:    logger.Named("screens"),
		providers: make(map[string]Provider),
	}
}

func (l *Loader) provider(viewID string) (Provider, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.providers[viewID]; ok {
		return p, nil
	}
	p, err := NewProvider(viewID, l.deps)
	if err != nil {
		return nil, err
	}
	l.providers[viewID] = p
	return p, nil
}

// Load returns the content for viewID. Unknown views get a placeholder
// rather than an error.
func (l *Loader) Load(ctx context.Context, viewID string) (Content, error) {
	p, err := l.provider(viewID)
	if err != nil {
		l.logger.Debug("no provider", zap.String("view", viewID))
		return Content{
			Title:   l.title(viewID),
			Summary: "Nothing to show here yet.",
		}, nil
	}

	c, err := p.Load(ctx)
	if err != nil {
		l.logger.Warn("load screen", zap.String("view", viewID), zap.Error(err))
		return Content{}, fmt.Errorf("load %s: %w", viewID, err)
	}
	if c.Title == "" {
		c.Title = l.title(viewID)
	}
	return c, nil
}

func (l *Loader) title(viewID string) string {
	if l.deps.Registry == nil {
		return viewID
	}
	return l.deps.Registry.Title(viewID)
}
