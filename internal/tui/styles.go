package tui

import (
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGreen     = lipgloss.Color("#2BB673")
	colorYellow    = lipgloss.Color("#F2C94C")
	colorRed       = lipgloss.Color("#EB5757")
	colorBlue      = lipgloss.Color("#56CCF2")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginBottom(1)

	routeStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	screenStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorDarkGray).
			Padding(1, 2)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)

	linkStyle = lipgloss.NewStyle().
			Underline(true).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(colorRed).
			Padding(0, 1)

	toastBase = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// returns the style a toast of type t is drawn with
func toastStyle(t presenter.ToastType) lipgloss.Style {
	switch t {
	case presenter.ToastAttention:
		return toastBase.BorderForeground(colorYellow).Foreground(colorYellow)
	case presenter.ToastInfo:
		return toastBase.BorderForeground(colorBlue).Foreground(colorBlue)
	case presenter.ToastSuccess:
		return toastBase.BorderForeground(colorGreen).Foreground(colorGreen)
	default:
		return toastBase.BorderForeground(colorRed).Foreground(colorRed)
	}
}
