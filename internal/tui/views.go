package tui

import (
	"fmt"
	"strings"

	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/charmbracelet/lipgloss"
)

// titles of the screens the client knows; other routes render their path
var screenTitles = map[string]string{
	"/":                             "cap",
	"/jobs":                         "Jobs",
	"/employer/preferences/profile": "Company profile",
}

var screenHints = map[string]string{
	"/": "Log in with: login EMAIL PASSWORD",
	"/jobs": "Post a job with: job TITLE [salary=N]\n" +
		"List your jobs with: jobs\n" +
		"Open a job with: open ID\n" +
		"Load reports with: reports",
	"/employer/preferences/profile": "Update your profile with: profile email=... phone=... zip=... street=...",
}

func (m *Model) screenView() string {
	path := routePath(m.route)

	title, ok := screenTitles[path]
	if !ok {
		title = path
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(routeStyle.Render(path))
	b.WriteString("\n\n")

	if user := m.session.CurrentUser(); user != nil {
		who := fmt.Sprintf("%s (%s)", user.Email, user.Role)
		if user.Company != nil && user.Company.Email != "" {
			who += " · employer contact " + user.Company.Email
		}
		if !m.session.Authorized() {
			who += " · signed out"
		}
		b.WriteString(who)
		b.WriteString("\n\n")
	}

	if hint, ok := screenHints[path]; ok {
		b.WriteString(statusStyle.Render(hint))
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}

	return screenStyle.Width(width).Render(b.String())
}

func (m *Model) toastsView() string {
	if len(m.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		rendered = append(rendered, toastStyle(t.Type).Render(toastText(t.Message)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// text of a toast including its link, if any
func toastText(msg presenter.DisplayMessage) string {
	text := strings.TrimSpace(msg.Text)

	if msg.Link != "" {
		text += " " + linkStyle.Render(msg.Link)
		if len(msg.Route) > 0 {
			text += " (ctrl+o → " + routePath(msg.Route) + ")"
		}
	}

	return text
}

func (m *Model) modalView() string {
	modal := modalStyle.Render(m.modalBody)

	if m.width == 0 || m.height == 0 {
		return modal
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
