package tui

import (
	"context"
	"time"

	"codeberg.org/capworks/portal/internal/apiclient"
	"codeberg.org/capworks/portal/internal/presenter"
	"codeberg.org/capworks/portal/internal/userstream"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

const (
	// toasts kept on screen at once; older ones are dropped first
	maxToasts = 5

	toastLifetime          = 6 * time.Second
	attentionToastLifetime = 12 * time.Second

	tickInterval = time.Second
)

// what the app needs from the outside world
type Options struct {
	Client     *apiclient.Client
	Session    *presenter.Session
	Deriver    *presenter.Deriver
	Stream     *presenter.ErrorStream
	WSEndpoint string
	Env        string
}

// main TUI application model. it is also the notifier, navigator and modal
// the dispatcher reports to.
type Model struct {
	ctx        context.Context
	client     *apiclient.Client
	session    *presenter.Session
	stream     *presenter.ErrorStream
	dispatcher *presenter.Dispatcher
	wsEndpoint string
	env        string

	userStream *userstream.Client

	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	busy    int

	route  []string
	toasts []Toast
	nextID int

	modalOpen bool
	modalBody string
	renderer  *glamour.TermRenderer

	status string
	now    func() time.Time
}

// a toast on screen
type Toast struct {
	ID        int
	Message   presenter.DisplayMessage
	Type      presenter.ToastType
	ExpiresAt time.Time
}

// an error event taken off the stream
type errorEventMsg struct {
	err error
}

// a command finished and has something to say
type resultMsg struct {
	text string
}

// the login command succeeded
type loggedInMsg struct {
	user *presenter.ActingUser
}

// the user stream is connected
type streamConnectedMsg struct {
	client *userstream.Client
}

// the me command loaded the current user
type profileLoadedMsg struct {
	user *presenter.ActingUser
}

// the user stream ended
type streamClosedMsg struct {
	client *userstream.Client
}

type tickMsg time.Time
