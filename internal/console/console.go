// Package console presents dispatched errors as plain lines, for one-shot
// commands that do not own the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyles = map[presenter.ToastType]lipgloss.Style{
		presenter.ToastError:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EB5757")),
		presenter.ToastAttention: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2C94C")),
		presenter.ToastInfo:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#56CCF2")),
		presenter.ToastSuccess:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2BB673")),
	}

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// writes every collaborator call as a line
type Printer struct {
	w io.Writer

	// last route navigated to, nil if none
	Route []string

	// whether the modal was opened
	ModalOpened bool
}

var _ presenter.Notifier = (*Printer)(nil)
var _ presenter.Navigator = (*Printer)(nil)
var _ presenter.Modal = (*Printer)(nil)

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Emit(msg presenter.DisplayMessage, severity presenter.ToastType) {
	fmt.Fprintln(p.w, FormatMessage(msg, severity)) //nolint:errcheck
}

func (p *Printer) NavigateTo(route []string) {
	p.Route = append([]string(nil), route...)
	fmt.Fprintln(p.w, dimStyle.Render("→ navigate "+strings.Join(route, " "))) //nolint:errcheck
}

func (p *Printer) Open() {
	p.ModalOpened = true
	fmt.Fprintln(p.w, labelStyles[presenter.ToastError].Render("[modal]")+" Something went wrong. The server could not complete the request.") //nolint:errcheck
}

// renders one message as "[type] text link (route)"
func FormatMessage(msg presenter.DisplayMessage, severity presenter.ToastType) string {
	style, ok := labelStyles[severity]
	if !ok {
		style = labelStyles[presenter.ToastError]
	}

	var b strings.Builder

	b.WriteString(style.Render("[" + string(severity) + "]"))
	b.WriteString(" ")
	b.WriteString(strings.TrimSpace(msg.Text))

	if msg.Link != "" {
		b.WriteString(" ")
		b.WriteString(msg.Link)
	}

	if len(msg.Route) > 0 {
		b.WriteString(dimStyle.Render(" (" + strings.Join(msg.Route, " ") + ")"))
	}

	return b.String()
}
