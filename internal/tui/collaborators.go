package tui

import (
	"slices"
	"strings"

	"codeberg.org/capworks/portal/internal/presenter"
)

var _ presenter.Notifier = (*Model)(nil)
var _ presenter.Navigator = (*Model)(nil)
var _ presenter.Modal = (*Model)(nil)

const modalMarkdown = `# Something went wrong

The server could not complete the request. Your changes were not saved.

Try again in a moment. If the problem persists, contact support.

*press esc to close*
`

// shows msg as a toast
func (m *Model) Emit(msg presenter.DisplayMessage, severity presenter.ToastType) {
	lifetime := toastLifetime
	if severity == presenter.ToastAttention || msg.Action != nil {
		lifetime = attentionToastLifetime
	}

	m.nextID++
	m.toasts = append(m.toasts, Toast{
		ID:        m.nextID,
		Message:   msg,
		Type:      severity,
		ExpiresAt: m.now().Add(lifetime),
	})

	if len(m.toasts) > maxToasts {
		m.toasts = slices.Clone(m.toasts[len(m.toasts)-maxToasts:])
	}
}

// shows the screen for route. employer screens turn everyone else back to
// the start screen with the access notice.
func (m *Model) NavigateTo(route []string) {
	if !m.allowed(route) {
		m.stream.FlagAccessDenied()
		route = presenter.RootRoute
	}

	m.route = slices.Clone(route)

	// a newly shown screen picks up the pending access notice
	m.dispatcher.Attach(m.stream)
}

func (m *Model) allowed(route []string) bool {
	if len(route) < 2 || route[1] != "employer" {
		return true
	}

	user := m.session.CurrentUser()
	return user != nil && user.Role == presenter.RoleEmployer
}

func (m *Model) Open() {
	m.modalOpen = true

	if m.modalBody != "" {
		return
	}

	m.modalBody = modalMarkdown
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(modalMarkdown); err == nil {
			m.modalBody = rendered
		}
	}
}

func (m *Model) expireToasts() {
	now := m.now()

	m.toasts = slices.DeleteFunc(m.toasts, func(t Toast) bool {
		return !now.Before(t.ExpiresAt)
	})
}

// runs the action of the newest toast that has one, then dismisses it
func (m *Model) runNewestAction() bool {
	for i := len(m.toasts) - 1; i >= 0; i-- {
		if m.toasts[i].Message.Action == nil {
			continue
		}

		action := m.toasts[i].Message.Action
		m.toasts = slices.Delete(m.toasts, i, i+1)
		action()

		return true
	}

	return false
}

// renders a route the way the address bar would show it
func routePath(route []string) string {
	var parts []string
	for _, segment := range route {
		if segment = strings.Trim(segment, "/"); segment != "" {
			parts = append(parts, segment)
		}
	}

	return "/" + strings.Join(parts, "/")
}
