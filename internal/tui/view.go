package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/relocate/tui-go/internal/navigation"
	"github.com/relocate/tui-go/internal/session"
)

const appName = "RELOCATE"

// View renders the current screen
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.viewMode {
	case ViewModeLoading:
		return m.place(m.loadingView())
	case ViewModeLogin:
		return m.place(m.loginView())
	case ViewModeReset:
		return m.place(m.resetView())
	case ViewModeSearch:
		return m.place(m.searchView())
	case ViewModeQuickNav:
		return m.place(m.quickNavView())
	case ViewModeHelp:
		return m.place(m.helpView())
	default:
		return m.mainView()
	}
}

// place centers a box on the screen
func (m Model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func logo(subtitle string) string {
	return HeaderStyle.Render(appName) + SubtitleStyle.Render(" · "+subtitle)
}

func (m Model) loadingView() string {
	label := "Starting up..."
	if m.session.Status() == session.StatusVerifying {
		label = "Checking your session..."
	}
	return BoxStyle.Render(logo("UK relocation tracker") + "\n\n" + m.spinner.View() + " " + label)
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(logo("Sign in"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(SuccessStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	for _, in := range m.loginInputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loginPending:
		b.WriteString(m.spinner.View() + " Signing in...")
	case m.loginError != "":
		b.WriteString(ErrorStyle.Render(m.loginError))
	default:
		b.WriteString(DimStyle.Render("enter sign in • tab next field • ctrl+r forgot password • ctrl+c quit"))
	}
	return BoxStyle.Render(b.String())
}

func (m Model) resetView() string {
	var b strings.Builder
	b.WriteString(logo("Reset password"))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Confirm your identity to choose a new password."))
	b.WriteString("\n\n")

	for _, in := range m.resetInputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.resetPending:
		b.WriteString(m.spinner.View() + " Submitting...")
	case m.resetError != "":
		b.WriteString(ErrorStyle.Render(m.resetError))
	default:
		b.WriteString(DimStyle.Render("enter submit • tab next field • esc back to sign in"))
	}
	return BoxStyle.Render(b.String())
}

func (m Model) searchView() string {
	var b strings.Builder
	b.WriteString(logo("Search"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	query := m.searchInput.Value()
	switch {
	case len([]rune(query)) < 2:
		b.WriteString(DimStyle.Render("Type at least two characters."))
	case len(m.searchResults) == 0:
		b.WriteString(DimStyle.Render("No views match " + fmt.Sprintf("%q", query) + "."))
	default:
		for i, d := range m.searchResults {
			line := d.Title + DimStyle.Render("  "+d.Description)
			b.WriteString(listItem(line, i == m.searchIndex))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("↑/↓ select • enter open • esc cancel"))
	return BoxStyle.Render(b.String())
}

func (m Model) quickNavView() string {
	var b strings.Builder
	b.WriteString(logo("Quick navigation"))
	b.WriteString("\n")

	section := ""
	for i, item := range m.quickItems {
		if item.section != section {
			section = item.section
			b.WriteString("\n")
			b.WriteString(SectionStyle.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(listItem(item.title, i == m.quickIndex))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("↑/↓ select • enter open • esc close"))
	return BoxStyle.Render(b.String())
}

func listItem(label string, selected bool) string {
	if selected {
		return SelectedStyle.Render("▸ " + label)
	}
	return ItemStyle.Render("  " + label)
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, group := range m.keys.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", "1-9")))
	b.WriteString(HelpDescStyle.Render("jump to breadcrumb"))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("Press ? or Esc to close"))

	return HelpStyle.Render(b.String())
}

// mainView renders the authenticated app
func (m Model) mainView() string {
	bodyHeight := m.height - 4
	if m.debug.IsEnabled() {
		bodyHeight -= debugHeight
	}

	sidebar := m.renderSidebar(sidebarWidth, bodyHeight)
	content := m.renderContentBox(m.width-sidebarWidth-2, bodyHeight)

	parts := []string{
		m.renderHeader(),
		m.renderBreadcrumbs(),
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content),
		m.renderStatusBar(),
	}
	if m.debug.IsEnabled() {
		parts = append(parts, m.debug.Render(m.width, debugHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	current := m.nav.Current()
	line := logo("UK relocation tracker") + SubtitleStyle.Render(" · ") +
		lipgloss.NewStyle().Foreground(ColorFgSecondary).Render(m.content.Title)
	if m.nav.IsBookmarked(current) {
		line += WarningStyle.Render(" ★")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Width(m.width).Render(line)
}

func (m Model) renderBreadcrumbs() string {
	crumbs := m.nav.Breadcrumbs()
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		label := fmt.Sprintf("%d %s", i+1, c.Title)
		if i == len(crumbs)-1 {
			parts[i] = CrumbCurrentStyle.Render(label)
		} else {
			parts[i] = CrumbStyle.Render(label)
		}
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(parts, DimStyle.Render(" › ")))
}

func (m Model) renderSidebar(width, height int) string {
	var b strings.Builder

	b.WriteString(SidebarTitleStyle.Render("Recently viewed"))
	b.WriteString("\n")
	recent := m.nav.RecentlyViewed()
	if len(recent) == 0 {
		b.WriteString(DimStyle.Render("nothing yet"))
		b.WriteString("\n")
	}
	for _, r := range recent {
		b.WriteString(sidebarEntry(r.Title, r.ViewID == m.nav.Current(), width-4))
	}

	b.WriteString("\n")
	b.WriteString(SidebarTitleStyle.Render("Bookmarks"))
	b.WriteString("\n")
	bookmarks := m.nav.Bookmarks()
	if len(bookmarks) == 0 {
		b.WriteString(DimStyle.Render("press b to pin a view"))
		b.WriteString("\n")
	}
	for _, bm := range bookmarks {
		b.WriteString(sidebarEntry(m.bookmarkLabel(bm), bm.ViewID == m.nav.Current(), width-4))
	}

	return SidebarStyle.
		Width(width).
		Height(max(height-2, 1)).
		Render(b.String())
}

func sidebarEntry(label string, current bool, width int) string {
	label = truncate(label, max(width-2, 4))
	if current {
		return CrumbCurrentStyle.Render("● "+label) + "\n"
	}
	return RowPrimaryStyle.Render("  "+label) + "\n"
}

func (m Model) renderContentBox(width, height int) string {
	title := ContentTitleStyle.Render(m.content.Title)

	var body string
	switch {
	case m.loadingScreen:
		body = m.spinner.View() + " Loading..."
	default:
		body = m.viewport.View()
	}

	return ContentStyle.
		Width(width).
		Height(max(height-2, 1)).
		Render(title + "\n" + body)
}

// renderContent formats the loaded screen for the viewport
func (m Model) renderContent() string {
	var b strings.Builder
	if m.content.Summary != "" {
		b.WriteString(SubtitleStyle.Render(m.content.Summary))
		b.WriteString("\n\n")
	}
	for _, row := range m.content.Rows {
		b.WriteString(RowPrimaryStyle.Render(row.Primary))
		b.WriteString("\n")
		if row.Secondary != "" {
			b.WriteString(RowSecondaryStyle.Render(row.Secondary))
			b.WriteString("\n")
		}
	}
	if len(m.content.Rows) == 0 && m.content.Summary == "" {
		b.WriteString(DimStyle.Render("Nothing to show."))
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	status := StatusOnlineStyle.Render("● " + m.session.Status().String())

	muted := lipgloss.NewStyle().Foreground(ColorFgMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorFgPrimary)

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, helpHint(b, keyStyle, muted))
	}
	return StatusBarStyle.Render(status + muted.Render(" │ ") + strings.Join(hints, muted.Render(" │ ")))
}

func helpHint(b key.Binding, keyStyle, descStyle lipgloss.Style) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(" "+h.Desc)
}

func crumbTitles(crumbs []navigation.Breadcrumb) []string {
	out := make([]string, len(crumbs))
	for i, c := range crumbs {
		out[i] = c.Title
	}
	return out
}
