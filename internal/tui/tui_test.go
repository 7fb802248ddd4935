package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/capworks/portal/internal/apiclient"
	"codeberg.org/capworks/portal/internal/presenter"
	"codeberg.org/capworks/portal/internal/userstream"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) *Model {
	t.Helper()

	endpoint := ""
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		endpoint = srv.URL
	}

	session := presenter.NewSession()

	return NewApp(context.Background(), Options{
		Client:  apiclient.New(endpoint, time.Second, session),
		Session: session,
		Deriver: presenter.NewDeriver(presenter.DefaultDictionary(), presenter.DefaultTexts()),
		Stream:  presenter.NewErrorStream(8),
		Env:     "test",
	})
}

func responseErr(status int, body string) error {
	return &apiclient.ResponseError{Method: http.MethodGet, Path: "/x", Status: status, Body: []byte(body)}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestUpdate_UnauthorizedClearsAndNavigatesHome(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.SetToken("tok")
	m.route = []string{"/", "jobs"}

	_, cmd := m.Update(errorEventMsg{err: responseErr(http.StatusUnauthorized, `{"error":"unauthorized"}`)})

	assert.NotNil(t, cmd, "keeps listening for errors")
	assert.False(t, m.session.Authorized())
	assert.Equal(t, []string{"/"}, m.route)
	assert.Empty(t, m.toasts)
	assert.False(t, m.modalOpen)
}

func TestUpdate_ServerFaultOpensBlockingModal(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(errorEventMsg{err: responseErr(http.StatusInternalServerError, `{}`)})
	require.True(t, m.modalOpen)
	assert.Empty(t, m.toasts)
	assert.Contains(t, ansi.Strip(m.View()), "Something went wrong")

	// input is ignored while the modal is open
	m.Update(key("x"))
	assert.Empty(t, m.input.Value())

	m.Update(key("esc"))
	assert.False(t, m.modalOpen)
}

func TestUpdate_NotFoundIsSilent(t *testing.T) {
	m := newTestModel(t, nil)
	m.route = []string{"/", "jobs"}

	m.Update(errorEventMsg{err: responseErr(http.StatusNotFound, `{"error":"not_found"}`)})

	assert.Empty(t, m.toasts)
	assert.False(t, m.modalOpen)
	assert.Equal(t, []string{"/", "jobs"}, m.route)
}

func TestUpdate_GenericErrorShowsPermissionToast(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(errorEventMsg{err: errors.New("dial tcp: connection refused")})

	require.Len(t, m.toasts, 1)
	assert.Equal(t, presenter.DefaultTexts().PermissionError, m.toasts[0].Message.Text)
	assert.Equal(t, presenter.ToastError, m.toasts[0].Type)
}

func TestUpdate_IncompleteProfileLinkNavigates(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.Observe(&presenter.ActingUser{Role: presenter.RoleEmployer})

	body := `{"company": [{"__all__": [{"message": "Your company profile is incomplete.", "code": "incomplete_profile"}]}]}`
	m.Update(errorEventMsg{err: responseErr(http.StatusBadRequest, body)})

	require.Len(t, m.toasts, 2)
	assert.Equal(t, "Your company profile is incomplete. ", m.toasts[0].Message.Text)
	assert.Equal(t, presenter.ToastError, m.toasts[0].Type)

	link := m.toasts[1]
	assert.Equal(t, presenter.ToastAttention, link.Type)
	assert.Equal(t, "Here", link.Message.Link)
	assert.Contains(t, m.View(), "/employer/preferences/profile")

	m.Update(key("ctrl+o"))
	assert.Equal(t, presenter.ProfileRoute, m.route)
	assert.Len(t, m.toasts, 1, "followed toast is dismissed")
}

func TestUpdate_EmployeeSeesEmployerContact(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.Observe(&presenter.ActingUser{
		Role:    presenter.RoleEmployee,
		Company: &presenter.Company{Email: "hr@acme.test"},
	})

	body := `{"job": [{"message": "Your company has not finished its profile.", "code": "incomplete_profile"}]}`
	m.Update(errorEventMsg{err: responseErr(http.StatusBadRequest, body)})

	require.Len(t, m.toasts, 2)
	assert.Equal(t, " Please contact your employer hr@acme.test", m.toasts[1].Message.Text)
}

func TestToasts_CapAndExpiry(t *testing.T) {
	m := newTestModel(t, nil)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for i := 0; i < maxToasts+2; i++ {
		m.Emit(presenter.DisplayMessage{Text: "msg"}, presenter.ToastError)
	}
	m.Emit(presenter.DisplayMessage{Text: "look"}, presenter.ToastAttention)

	require.Len(t, m.toasts, maxToasts)
	assert.Equal(t, maxToasts+3, m.toasts[maxToasts-1].ID)

	now = now.Add(toastLifetime)
	m.Update(tickMsg(now))

	require.Len(t, m.toasts, 1)
	assert.Equal(t, "look", m.toasts[0].Message.Text)

	now = now.Add(attentionToastLifetime)
	m.Update(tickMsg(now))
	assert.Empty(t, m.toasts)
}

func TestExecute_LocalCommands(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.Observe(&presenter.ActingUser{Role: presenter.RoleEmployer})

	m.input.SetValue("go /employer/preferences")
	m.Update(key("enter"))
	assert.Equal(t, []string{"/", "employer", "preferences"}, m.route)
	assert.Empty(t, m.input.Value())

	m.input.SetValue("dance")
	m.Update(key("enter"))
	require.Len(t, m.toasts, 1)
	assert.Equal(t, presenter.ToastInfo, m.toasts[0].Type)

	m.session.SetToken("tok")
	m.input.SetValue("logout")
	m.Update(key("enter"))
	assert.False(t, m.session.Authorized())
	assert.Equal(t, []string{"/"}, m.route)
}

func TestGuarded_ForwardsFailures(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cmd := m.reports()
	msg := cmd()
	assert.Equal(t, resultMsg{}, msg)

	select {
	case err := <-m.stream.Events():
		kind, _ := presenter.Classify(err)
		assert.Equal(t, presenter.KindServerFault, kind)
	default:
		t.Fatal("failure was not forwarded")
	}
}

func TestGuarded_LoginStoresToken(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "tok-1", "user": {"email": "employer@acme.test", "role": "employer"}}`)) //nolint:errcheck
	})

	msg := m.login("employer@acme.test", "employer")()

	loggedIn, ok := msg.(loggedInMsg)
	require.True(t, ok)
	assert.Equal(t, "tok-1", m.session.Token())

	m.busy = 1
	m.Update(loggedIn)
	assert.Equal(t, 0, m.busy)
	assert.Equal(t, []string{"/", "jobs"}, m.route)
	assert.Equal(t, presenter.RoleEmployer, m.session.CurrentUser().Role)
}

func TestParseProfileArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    apiclient.ProfileUpdate
		wantErr bool
	}{
		{name: "empty", wantErr: true},
		{name: "not key value", args: []string{"email"}, wantErr: true},
		{name: "unknown key", args: []string{"color=red"}, wantErr: true},
		{
			name: "all fields",
			args: []string{"email=a@b.test", "phone=555", "zip=94107", "street=Main"},
			want: apiclient.ProfileUpdate{
				Email:   "a@b.test",
				Phone:   "555",
				Address: &apiclient.Address{Zip: "94107", Street: "Main"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProfileArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJobArgs(t *testing.T) {
	req, err := parseJobArgs([]string{"Senior", "Welder", "salary=52000"})
	require.NoError(t, err)
	assert.Equal(t, apiclient.JobRequest{Title: "Senior Welder", Salary: 52000}, req)

	_, err = parseJobArgs([]string{"Welder", "salary=lots"})
	assert.Error(t, err)
}

func TestRoutePath(t *testing.T) {
	assert.Equal(t, "/", routePath([]string{"/"}))
	assert.Equal(t, "/employer/preferences/profile", routePath(presenter.ProfileRoute))
	assert.Equal(t, []string{"/", "jobs"}, parseRoute("/jobs/"))
}

func TestUpdate_UserStreamFeedsSession(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close() //nolint:errcheck

		conn.WriteMessage(websocket.TextMessage, //nolint:errcheck
			[]byte(`{"type":"user_updated","payload":{"role":"employee","company":{"email":"people@acme.test"}}}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"server_shutdown"}`)) //nolint:errcheck
		conn.ReadMessage()                                                            //nolint:errcheck
	}))
	defer srv.Close()

	m := newTestModel(t, nil)

	current := userstream.New("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, current.Connect(context.Background()))
	defer current.Close()

	_, cmd := m.Update(streamConnectedMsg{client: current})
	require.NotNil(t, cmd)
	assert.Same(t, current, m.userStream)

	// runs until the server shuts the stream down
	closed := cmd()
	assert.Equal(t, streamClosedMsg{client: current}, closed)
	assert.Equal(t, "people@acme.test", m.session.DeriveContext().EmployerEmail)

	stale := userstream.New("ws://localhost/api/v1/ws", nil)
	m.Update(streamClosedMsg{client: stale})
	assert.Same(t, current, m.userStream)

	m.Update(closed)
	assert.Nil(t, m.userStream)
	assert.Contains(t, m.View(), "live updates disconnected")
}

func TestNavigateTo_EmployerScreensTurnOthersAway(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.Observe(&presenter.ActingUser{Role: presenter.RoleEmployee})
	m.route = []string{"/", "jobs"}

	m.input.SetValue("go /employer/preferences/profile")
	m.Update(key("enter"))

	assert.Equal(t, []string{"/"}, m.route)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, presenter.DefaultTexts().PermissionError, m.toasts[0].Message.Text)
	assert.Equal(t, presenter.ToastError, m.toasts[0].Type)

	// the notice is shown once
	m.NavigateTo([]string{"/", "jobs"})
	assert.Len(t, m.toasts, 1)
	assert.False(t, m.stream.TakeAccessMessage())
}

func TestNavigateTo_ProfileLinkForNonEmployer(t *testing.T) {
	m := newTestModel(t, nil)
	m.session.Observe(&presenter.ActingUser{Role: presenter.RoleAdmin})

	body := `{"company": [{"__all__": [{"message": "Your company profile is incomplete.", "code": "incomplete_profile"}]}]}`
	m.Update(errorEventMsg{err: responseErr(http.StatusBadRequest, body)})
	require.Len(t, m.toasts, 2)

	m.Update(key("ctrl+o"))

	assert.Equal(t, []string{"/"}, m.route)
	require.Len(t, m.toasts, 2)
	assert.Equal(t, presenter.DefaultTexts().PermissionError, m.toasts[1].Message.Text)
}
