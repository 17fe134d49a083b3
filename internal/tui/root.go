package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/navigation"
	"github.com/relocate/tui-go/internal/recovery"
	"github.com/relocate/tui-go/internal/screens"
	"github.com/relocate/tui-go/internal/session"
	"github.com/relocate/tui-go/internal/views"
)

// ViewMode represents the current screen
type ViewMode int

const (
	ViewModeLoading  ViewMode = iota // Session not settled yet
	ViewModeLogin                    // Sign-in form
	ViewModeReset                    // Forgot-password form
	ViewModeMain                     // Authenticated app
	ViewModeSearch                   // View search overlay
	ViewModeQuickNav                 // Recents, bookmarks and quick actions
	ViewModeHelp                     // Help overlay
)

const (
	fieldUsername = iota
	fieldPassword
	loginFieldCount
)

const (
	fieldEmail = iota
	fieldFullName
	fieldAnswer
	fieldNewPassword
	fieldConfirm
	resetFieldCount
)

const (
	defaultTimeout = 30 * time.Second

	sidebarWidth = 28
	debugHeight  = 8

	msgBadCredentials = "Invalid username or password."
	msgMissingLogin   = "Enter your username and password."
	msgExpired        = "Your session has expired. Please sign in again."
	msgUnreachable    = "Could not reach the server. Please try again."
)

// quickActions are the fixed shortcuts offered in quick navigation
var quickActions = []string{"timeline", "visa", "uk-property"}

// Messages
type sessionSettledMsg struct {
	status session.Status
}

type loginResultMsg struct {
	ok bool
}

type screenLoadedMsg struct {
	viewID  string
	content screens.Content
	err     error
}

type resetResultMsg struct {
	message string
	err     error
}

// ScreenLoader produces the content shown for a view
type ScreenLoader interface {
	Load(ctx context.Context, viewID string) (screens.Content, error)
}

// Deps are the collaborators the UI drives
type Deps struct {
	Session  *session.Manager
	Nav      *navigation.Model
	Screens  ScreenLoader
	Recovery recovery.Submitter
	Logger   *zap.Logger
	Timeout  time.Duration // per remote call; zero means 30s
	Debug    bool
}

type quickItem struct {
	section string
	viewID  string
	title   string
}

// Model is the root Bubble Tea model. Session and navigation state live in
// their own packages; the model only mirrors them for rendering.
type Model struct {
	session  *session.Manager
	nav      *navigation.Model
	screens  ScreenLoader
	recovery recovery.Submitter
	logger   *zap.Logger
	timeout  time.Duration

	viewMode ViewMode
	keys     KeyMap
	width    int
	height   int
	ready    bool
	spinner  spinner.Model

	// Login form
	loginInputs  [loginFieldCount]textinput.Model
	loginFocus   int
	loginPending bool
	loginError   string
	notice       string

	// Forgot-password form
	resetInputs  [resetFieldCount]textinput.Model
	resetFocus   int
	resetPending bool
	resetError   string

	// Current screen
	viewport      viewport.Model
	content       screens.Content
	screenErr     error
	loadingScreen bool

	// Search overlay
	searchInput   textinput.Model
	searchResults []views.Descriptor
	searchIndex   int

	// Quick navigation overlay
	quickItems []quickItem
	quickIndex int

	debug DebugPanel
}

func newInput(prompt, placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = InputPromptStyle
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// NewRootModel creates the root model in the loading state
func NewRootModel(d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	m := Model{
		session:  d.Session,
		nav:      d.Nav,
		screens:  d.Screens,
		recovery: d.Recovery,
		logger:   logger.Named("tui"),
		timeout:  timeout,
		viewMode: ViewModeLoading,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(80, 20),
		debug:    NewDebugPanel(d.Debug),
	}
	m.spinner.Style = WarningStyle

	m.loginInputs[fieldUsername] = newInput("Username: ", "relocate_user", false)
	m.loginInputs[fieldPassword] = newInput("Password: ", "", true)

	m.resetInputs[fieldEmail] = newInput("Email:            ", "you@example.com", false)
	m.resetInputs[fieldFullName] = newInput("Full name:        ", "", false)
	m.resetInputs[fieldAnswer] = newInput("City you live in: ", "", false)
	m.resetInputs[fieldNewPassword] = newInput("New password:     ", "", true)
	m.resetInputs[fieldConfirm] = newInput("Confirm password: ", "", true)

	m.searchInput = newInput("❯ ", "Search views...", false)
	return m
}

// Init starts the spinner and reads the stored session
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initSessionCmd())
}

func (m Model) initSessionCmd() tea.Cmd {
	mgr, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sessionSettledMsg{status: mgr.Initialize(ctx)}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	mgr, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loginResultMsg{ok: mgr.Login(ctx, username, password)}
	}
}

func (m Model) loadScreenCmd(viewID string) tea.Cmd {
	loader, timeout := m.screens, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		c, err := loader.Load(ctx, viewID)
		return screenLoadedMsg{viewID: viewID, content: c, err: err}
	}
}

func (m Model) resetCmd(req recovery.Request) tea.Cmd {
	sub, timeout := m.recovery, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := recovery.Submit(ctx, sub, req)
		return resetResultMsg{message: message, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionSettledMsg:
		m.debug.AddEvent("session", msg.status.String())
		return m.settle()

	case loginResultMsg:
		m.loginPending = false
		if !msg.ok {
			m.loginError = msgBadCredentials
			m.loginInputs[fieldPassword].SetValue("")
			return m, nil
		}
		m.debug.AddEvent("session", "logged in")
		return m.settle()

	case screenLoadedMsg:
		return m.screenLoaded(msg)

	case resetResultMsg:
		m.resetPending = false
		if msg.err != nil {
			m.resetError = resetErrorText(msg.err)
			return m, nil
		}
		m.clearResetForm()
		m.notice = msg.message
		m.viewMode = ViewModeLogin
		cmd := m.focusLogin(fieldUsername)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// settle routes to the screen matching the committed session status
func (m Model) settle() (tea.Model, tea.Cmd) {
	status := m.session.Status()
	switch {
	case status.Loading():
		m.viewMode = ViewModeLoading
		return m, nil
	case status == session.StatusAuthenticated:
		m.loginError = ""
		m.notice = ""
		m.clearLoginForm()
		return m.navigate(views.DefaultViewID)
	default:
		m.viewMode = ViewModeLogin
		cmd := m.focusLogin(fieldUsername)
		return m, cmd
	}
}

// navigate records the visit and starts loading the view's content
func (m Model) navigate(viewID string) (tea.Model, tea.Cmd) {
	m.nav.NavigateTo(viewID, "")
	m.viewMode = ViewModeMain
	m.content = screens.Content{Title: m.nav.TitleOf(viewID)}
	m.screenErr = nil
	m.loadingScreen = true
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	m.debug.AddEvent("navigate", strings.Join(crumbTitles(m.nav.Breadcrumbs()), " › "))
	return m, m.loadScreenCmd(viewID)
}

func (m Model) screenLoaded(msg screenLoadedMsg) (tea.Model, tea.Cmd) {
	// Results for a view we already left, or from before a logout
	if !m.session.Authenticated() || msg.viewID != m.nav.Current() {
		m.debug.AddEvent("discard", msg.viewID)
		return m, nil
	}
	m.loadingScreen = false

	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			m.logger.Info("credential rejected, signing out", zap.String("view", msg.viewID))
			return m.logout(msgExpired)
		}
		m.screenErr = msg.err
		m.viewport.SetContent(ErrorStyle.Render(msg.err.Error()))
		m.debug.AddEvent("error", msg.err.Error())
		return m, nil
	}

	m.content = msg.content
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
	return m, nil
}

// logout ends the session and clears everything derived from it
func (m Model) logout(notice string) (tea.Model, tea.Cmd) {
	m.session.Logout()
	m.nav.Reset()

	m.content = screens.Content{}
	m.screenErr = nil
	m.loadingScreen = false
	m.viewport.SetContent("")
	m.searchResults = nil
	m.quickItems = nil
	m.notice = notice
	m.viewMode = ViewModeLogin
	m.debug.AddEvent("session", "logged out")

	cmd := m.focusLogin(fieldUsername)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, regardless of state
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewModeLogin:
		return m.updateLogin(msg)
	case ViewModeReset:
		return m.updateReset(msg)
	case ViewModeMain:
		return m.updateMain(msg)
	case ViewModeSearch:
		return m.updateSearch(msg)
	case ViewModeQuickNav:
		return m.updateQuickNav(msg)
	case ViewModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.viewMode = ViewModeMain
		}
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form is disabled while a login is in flight
	if m.loginPending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitLogin()
	case key.Matches(msg, m.keys.Forgot):
		m.viewMode = ViewModeReset
		m.resetError = ""
		cmd := m.focusReset(fieldEmail)
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		cmd := m.focusLogin((m.loginFocus + 1) % loginFieldCount)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.focusLogin((m.loginFocus + loginFieldCount - 1) % loginFieldCount)
		return m, cmd
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	username := m.loginInputs[fieldUsername].Value()
	password := m.loginInputs[fieldPassword].Value()
	if strings.TrimSpace(username) == "" || password == "" {
		m.loginError = msgMissingLogin
		return m, nil
	}

	m.loginPending = true
	m.loginError = ""
	m.notice = ""
	m.debug.AddEvent("login", username)
	return m, m.loginCmd(username, password)
}

func (m Model) updateReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.resetPending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.clearResetForm()
		m.viewMode = ViewModeLogin
		cmd := m.focusLogin(fieldUsername)
		return m, cmd
	case key.Matches(msg, m.keys.Submit):
		return m.submitReset()
	case key.Matches(msg, m.keys.Next):
		cmd := m.focusReset((m.resetFocus + 1) % resetFieldCount)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.focusReset((m.resetFocus + resetFieldCount - 1) % resetFieldCount)
		return m, cmd
	}

	var cmd tea.Cmd
	m.resetInputs[m.resetFocus], cmd = m.resetInputs[m.resetFocus].Update(msg)
	return m, cmd
}

func (m Model) submitReset() (tea.Model, tea.Cmd) {
	req := recovery.Request{
		Email:       m.resetInputs[fieldEmail].Value(),
		FullName:    m.resetInputs[fieldFullName].Value(),
		Answer:      m.resetInputs[fieldAnswer].Value(),
		NewPassword: m.resetInputs[fieldNewPassword].Value(),
		Confirm:     m.resetInputs[fieldConfirm].Value(),
	}
	if err := req.Validate(); err != nil {
		m.resetError = resetErrorText(err)
		return m, nil
	}

	m.resetPending = true
	m.resetError = ""
	m.debug.AddEvent("reset", strings.TrimSpace(req.Email))
	return m, m.resetCmd(req)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewModeHelp

	case key.Matches(msg, m.keys.Search):
		m.viewMode = ViewModeSearch
		m.searchInput.SetValue("")
		m.searchResults = nil
		m.searchIndex = 0
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.QuickNav):
		m.quickItems = m.buildQuickItems()
		m.quickIndex = 0
		m.viewMode = ViewModeQuickNav

	case key.Matches(msg, m.keys.Home):
		return m.selectCrumb(0)

	case key.Matches(msg, m.keys.Bookmark):
		current := m.nav.Current()
		if m.nav.ToggleBookmark(current) {
			m.debug.AddEvent("bookmark", "added "+current)
		} else {
			m.debug.AddEvent("bookmark", "removed "+current)
		}

	case key.Matches(msg, m.keys.Refresh):
		m.loadingScreen = true
		m.screenErr = nil
		return m, m.loadScreenCmd(m.nav.Current())

	case key.Matches(msg, m.keys.Logout):
		return m.logout("")

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()

	default:
		// Digits pick a breadcrumb: 1 is Home
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.selectCrumb(int(s[0] - '1'))
		}
	}
	return m, nil
}

// selectCrumb navigates to the i-th breadcrumb's path
func (m Model) selectCrumb(i int) (tea.Model, tea.Cmd) {
	crumbs := m.nav.Breadcrumbs()
	if i < 0 || i >= len(crumbs) {
		return m, nil
	}
	return m.navigate(crumbs[i].Path)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil
	case tea.KeyUp:
		if m.searchIndex > 0 {
			m.searchIndex--
		}
		return m, nil
	case tea.KeyDown:
		if m.searchIndex < len(m.searchResults)-1 {
			m.searchIndex++
		}
		return m, nil
	case tea.KeyEnter:
		if len(m.searchResults) == 0 {
			return m, nil
		}
		target := m.searchResults[m.searchIndex]
		m.closeSearch()
		return m.navigate(target.ID)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchResults = m.nav.Search(m.searchInput.Value())
	m.searchIndex = min(m.searchIndex, max(len(m.searchResults)-1, 0))
	return m, cmd
}

func (m *Model) closeSearch() {
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.searchResults = nil
	m.searchIndex = 0
	m.viewMode = ViewModeMain
}

func (m Model) updateQuickNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.QuickNav, m.keys.Quit):
		m.viewMode = ViewModeMain
	case key.Matches(msg, m.keys.Up):
		if m.quickIndex > 0 {
			m.quickIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.quickIndex < len(m.quickItems)-1 {
			m.quickIndex++
		}
	case key.Matches(msg, m.keys.Submit):
		if len(m.quickItems) == 0 {
			return m, nil
		}
		return m.navigate(m.quickItems[m.quickIndex].viewID)
	}
	return m, nil
}

func (m Model) buildQuickItems() []quickItem {
	var items []quickItem
	for _, r := range m.nav.RecentlyViewed() {
		items = append(items, quickItem{section: "Recently viewed", viewID: r.ViewID, title: r.Title})
	}
	for _, b := range m.nav.Bookmarks() {
		items = append(items, quickItem{section: "Bookmarks", viewID: b.ViewID, title: m.bookmarkLabel(b)})
	}
	for _, id := range quickActions {
		items = append(items, quickItem{section: "Quick actions", viewID: id, title: m.nav.TitleOf(id)})
	}
	return items
}

// bookmarkLabel falls back to the registry title for unlabeled bookmarks
func (m Model) bookmarkLabel(b navigation.Bookmark) string {
	if b.Title != "" {
		return b.Title
	}
	return m.nav.TitleOf(b.ViewID)
}

func (m *Model) focusLogin(i int) tea.Cmd {
	m.loginFocus = i
	for j := range m.loginInputs {
		m.loginInputs[j].Blur()
	}
	return m.loginInputs[i].Focus()
}

func (m *Model) focusReset(i int) tea.Cmd {
	m.resetFocus = i
	for j := range m.resetInputs {
		m.resetInputs[j].Blur()
	}
	return m.resetInputs[i].Focus()
}

func (m *Model) clearLoginForm() {
	for j := range m.loginInputs {
		m.loginInputs[j].SetValue("")
		m.loginInputs[j].Blur()
	}
	m.loginFocus = fieldUsername
}

func (m *Model) clearResetForm() {
	for j := range m.resetInputs {
		m.resetInputs[j].SetValue("")
		m.resetInputs[j].Blur()
	}
	m.resetFocus = fieldEmail
	m.resetError = ""
}

// resize fits the viewport between the sidebar, header and status bar
func (m *Model) resize() {
	bodyHeight := m.height - 4
	if m.debug.IsEnabled() {
		bodyHeight -= debugHeight
	}
	contentWidth := m.width - sidebarWidth - 2

	m.viewport.Width = max(contentWidth-6, 10)
	m.viewport.Height = max(bodyHeight-5, 1)
	m.searchInput.Width = max(min(m.width-20, 60), 10)

	if m.viewMode == ViewModeMain && !m.loadingScreen && m.screenErr == nil {
		m.viewport.SetContent(m.renderContent())
	}
}

func resetErrorText(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, recovery.ErrMissingField):
		return "Please fill in every field."
	case errors.Is(err, recovery.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.As(err, &apiErr):
		return apiErr.Detail
	default:
		return msgUnreachable
	}
}
