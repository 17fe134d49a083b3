package navigation

import (
	"slices"
	"sync"
	"time"

	"github.com/relocate/tui-go/internal/views"
)

const (
	// MaxRecent caps the recently-viewed list
	MaxRecent = 5

	// MaxBookmarks caps the bookmark list
	MaxBookmarks = 8

	// HomeTitle labels the root breadcrumb
	HomeTitle = "Home"

	minQueryLen = 2
)

// Breadcrumb is one entry of the two-level trail
type Breadcrumb struct {
	Title string
	Path  string // view id to navigate to
}

// RecentEntry records a visit to a view
type RecentEntry struct {
	ViewID    string
	Title     string
	Timestamp time.Time
}

// Bookmark is a user-pinned view. Title and Description are the labels
// captured at the moment of bookmarking and may be empty.
type Bookmark struct {
	ViewID      string
	Title       string
	Description string
	Timestamp   time.Time
}

// Model tracks the current view and the browsing aids derived from it.
// Every mutator commits under one lock, so readers never observe a
// half-applied transition.
type Model struct {
	mu          sync.RWMutex
	registry    *views.Registry
	now         func() time.Time
	current     string
	breadcrumbs []Breadcrumb
	recent      []RecentEntry
	bookmarks   []Bookmark
}

// Option configures a Model
type Option func(*Model)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a model positioned on the default view with empty history.
func New(registry *views.Registry, opts ...Option) *Model {
	m := &Model{
		registry: registry,
		now:      time.Now,
		current:  views.DefaultViewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.breadcrumbs = m.trail(views.DefaultViewID, "")
	return m
}

// NavigateTo makes viewID the current view, records the visit, and rebuilds
// the breadcrumb trail. A non-empty override replaces the registry title.
// Unregistered ids degrade to fallback labels.
func (m *Model) NavigateTo(viewID, override string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = viewID

	title := override
	if title == "" {
		title = m.registry.Title(viewID)
	}
	entry := RecentEntry{ViewID: viewID, Title: title, Timestamp: m.now()}
	m.recent = upsertFront(m.recent, entry, func(e RecentEntry) bool { return e.ViewID == viewID }, MaxRecent)

	m.breadcrumbs = m.trail(viewID, override)
}

// trail builds [Home, current]; callers hold the lock or own m exclusively.
func (m *Model) trail(viewID, override string) []Breadcrumb {
	leaf := Breadcrumb{Title: override, Path: viewID}
	if d, ok := m.registry.Lookup(viewID); ok {
		leaf.Title = d.Title
	} else if leaf.Title == "" {
		leaf.Title = views.UnknownTitle
	}
	return []Breadcrumb{
		{Title: HomeTitle, Path: views.DefaultViewID},
		leaf,
	}
}

// AddBookmark pins viewID at the front of the bookmark list, replacing any
// earlier bookmark for the same view.
func (m *Model) AddBookmark(viewID, title, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := Bookmark{ViewID: viewID, Title: title, Description: description, Timestamp: m.now()}
	m.bookmarks = upsertFront(m.bookmarks, b, func(e Bookmark) bool { return e.ViewID == viewID }, MaxBookmarks)
}

// RemoveBookmark drops the bookmark for viewID if there is one.
func (m *Model) RemoveBookmark(viewID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookmarks = slices.DeleteFunc(m.bookmarks, func(b Bookmark) bool { return b.ViewID == viewID })
}

// ToggleBookmark removes the bookmark for viewID or adds one with empty
// labels, returning whether the view is bookmarked afterwards.
func (m *Model) ToggleBookmark(viewID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	same := func(b Bookmark) bool { return b.ViewID == viewID }
	if slices.ContainsFunc(m.bookmarks, same) {
		m.bookmarks = slices.DeleteFunc(m.bookmarks, same)
		return false
	}
	m.bookmarks = upsertFront(m.bookmarks, Bookmark{ViewID: viewID, Timestamp: m.now()}, same, MaxBookmarks)
	return true
}

// IsBookmarked reports whether viewID is in the bookmark list
func (m *Model) IsBookmarked(viewID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.ContainsFunc(m.bookmarks, func(b Bookmark) bool { return b.ViewID == viewID })
}

// Search returns the registry entries whose title or description contains
// query, ignoring case. Queries shorter than two characters match nothing.
func (m *Model) Search(query string) []views.Descriptor {
	if len([]rune(query)) < minQueryLen {
		return nil
	}
	return slices.Collect(m.registry.Matches(query))
}

// TitleOf resolves a label for viewID without touching navigation state.
func (m *Model) TitleOf(viewID string) string {
	return m.registry.Title(viewID)
}

// Registry exposes the catalog the model navigates over
func (m *Model) Registry() *views.Registry {
	return m.registry
}

func (m *Model) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Model) Breadcrumbs() []Breadcrumb {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.breadcrumbs)
}

// RecentlyViewed returns visits, most recent first
func (m *Model) RecentlyViewed() []RecentEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.recent)
}

// Bookmarks returns bookmarks, most recent first
func (m *Model) Bookmarks() []Bookmark {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.bookmarks)
}

// Reset returns the model to its initial state. Used when the session ends.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = views.DefaultViewID
	m.breadcrumbs = m.trail(views.DefaultViewID, "")
	m.recent = nil
	m.bookmarks = nil
}

// upsertFront removes every element matching same, puts item first, and
// truncates to limit.
func upsertFront[T any](list []T, item T, same func(T) bool, limit int) []T {
	out := make([]T, 0, min(len(list)+1, limit))
	out = append(out, item)
	for _, e := range list {
		if len(out) == limit {
			break
		}
		if same(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
