package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/capworks/portal/internal/apiclient"
	"codeberg.org/capworks/portal/internal/logger"
	"codeberg.org/capworks/portal/internal/presenter"
	"codeberg.org/capworks/portal/internal/userstream"
	tea "github.com/charmbracelet/bubbletea"
)

// runs a prompt line. API commands run in the background; their failures
// reach the dispatcher through the error stream.
func (m *Model) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "quit", "exit":
		m.closeUserStream()
		return tea.Quit

	case "go":
		if len(args) == 0 {
			return m.usage("go /path/to/screen")
		}
		m.NavigateTo(parseRoute(args[0]))
		return nil

	case "logout":
		m.session.ClearAuthorization()
		m.NavigateTo(presenter.RootRoute)
		return nil

	case "login":
		if len(args) != 2 {
			return m.usage("login EMAIL PASSWORD")
		}
		return m.run(m.login(args[0], args[1]))

	case "me":
		return m.run(m.me())

	case "profile":
		update, err := parseProfileArgs(args)
		if err != nil {
			return m.usage(err.Error())
		}
		return m.run(m.updateProfile(update))

	case "job":
		req, err := parseJobArgs(args)
		if err != nil {
			return m.usage(err.Error())
		}
		return m.run(m.createJob(req))

	case "jobs":
		return m.run(m.listJobs())

	case "open":
		if len(args) != 1 {
			return m.usage("open ID")
		}
		return m.run(m.openJob(args[0]))

	case "reports":
		return m.run(m.reports())

	default:
		m.Emit(presenter.DisplayMessage{Text: "Unknown command: " + name}, presenter.ToastInfo)
		return nil
	}
}

func (m *Model) usage(text string) tea.Cmd {
	m.Emit(presenter.DisplayMessage{Text: "usage: " + text}, presenter.ToastInfo)
	return nil
}

// starts a background command with the spinner running
func (m *Model) run(cmd tea.Cmd) tea.Cmd {
	m.busy++
	return tea.Batch(cmd, m.spinner.Tick)
}

// runs fn in the background under Guard. a failure is forwarded to the
// error stream and yields an empty resultMsg so the spinner stops.
func guarded[T any](ctx context.Context, fwd presenter.Forwarder, fn func(context.Context) (T, error), done func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		var result T
		succeeded := false

		op := presenter.Guard(fwd, true, func(ctx context.Context) error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			result, succeeded = v, true
			return nil
		})

		if err := op(ctx); err != nil || !succeeded {
			return resultMsg{}
		}

		return done(result)
	}
}

func (m *Model) login(email, password string) tea.Cmd {
	return guarded(m.ctx, m.stream,
		func(ctx context.Context) (*apiclient.LoginResponse, error) {
			return m.client.Login(ctx, email, password)
		},
		func(resp *apiclient.LoginResponse) tea.Msg {
			m.session.SetToken(resp.Token)
			return loggedInMsg{user: resp.User}
		},
	)
}

func (m *Model) me() tea.Cmd {
	return guarded(m.ctx, m.stream, m.client.Me, func(user *presenter.ActingUser) tea.Msg {
		return profileLoadedMsg{user: user}
	})
}

func (m *Model) updateProfile(update apiclient.ProfileUpdate) tea.Cmd {
	return guarded(m.ctx, m.stream,
		func(ctx context.Context) (*presenter.ActingUser, error) {
			return m.client.UpdateProfile(ctx, update)
		},
		func(*presenter.ActingUser) tea.Msg {
			return resultMsg{text: "Profile saved"}
		},
	)
}

func (m *Model) createJob(req apiclient.JobRequest) tea.Cmd {
	return guarded(m.ctx, m.stream,
		func(ctx context.Context) (*apiclient.Job, error) {
			return m.client.CreateJob(ctx, req)
		},
		func(job *apiclient.Job) tea.Msg {
			return resultMsg{text: fmt.Sprintf("Job %s posted", job.ID)}
		},
	)
}

// number of jobs the jobs command shows
const jobsPageSize = 10

func (m *Model) listJobs() tea.Cmd {
	return guarded(m.ctx, m.stream,
		func(ctx context.Context) (*apiclient.JobPage, error) {
			return m.client.ListJobs(ctx, jobsPageSize, 0)
		},
		func(page *apiclient.JobPage) tea.Msg {
			if len(page.Jobs) == 0 {
				return resultMsg{text: "No jobs posted yet"}
			}

			titles := make([]string, 0, len(page.Jobs))
			for _, job := range page.Jobs {
				titles = append(titles, job.ID+" "+job.Title)
			}

			text := strings.Join(titles, ", ")
			if page.Pagination.HasMore {
				text += fmt.Sprintf(" (%d total)", page.Pagination.Total)
			}

			return resultMsg{text: text}
		},
	)
}

func (m *Model) openJob(id string) tea.Cmd {
	return guarded(m.ctx, m.stream,
		func(ctx context.Context) (*apiclient.Job, error) {
			return m.client.GetJob(ctx, id)
		},
		func(job *apiclient.Job) tea.Msg {
			return resultMsg{text: fmt.Sprintf("%s: %s", job.ID, job.Title)}
		},
	)
}

func (m *Model) reports() tea.Cmd {
	return guarded(m.ctx, m.stream, m.client.Reports, func(reports []apiclient.Report) tea.Msg {
		return resultMsg{text: fmt.Sprintf("%d reports", len(reports))}
	})
}

// connects the user stream with the current token. connection failures are
// logged only; the client works without live updates.
func connectStream(ctx context.Context, endpoint string, tokens userstream.TokenSource) tea.Cmd {
	if endpoint == "" {
		return nil
	}

	return func() tea.Msg {
		client := userstream.New(endpoint, tokens)
		if err := client.Connect(ctx); err != nil {
			logger.Warn("user stream unavailable", "error", err)
			return nil
		}

		return streamConnectedMsg{client: client}
	}
}

// feeds user updates into the session until the stream ends. the screen
// picks them up on its next render.
func watchStream(ctx context.Context, session *presenter.Session, client *userstream.Client) tea.Cmd {
	return func() tea.Msg {
		session.Watch(ctx, client.Updates())
		return streamClosedMsg{client: client}
	}
}

// parses key=value pairs of the profile command
func parseProfileArgs(args []string) (apiclient.ProfileUpdate, error) {
	var update apiclient.ProfileUpdate

	if len(args) == 0 {
		return update, fmt.Errorf("profile email=... phone=... zip=... street=...")
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return update, fmt.Errorf("profile expects key=value, got %q", arg)
		}

		switch key {
		case "email":
			update.Email = value
		case "phone":
			update.Phone = value
		case "zip", "street":
			if update.Address == nil {
				update.Address = &apiclient.Address{}
			}
			if key == "zip" {
				update.Address.Zip = value
			} else {
				update.Address.Street = value
			}
		default:
			return update, fmt.Errorf("profile does not know %q", key)
		}
	}

	return update, nil
}

// parses "TITLE WORDS... [salary=N]"
func parseJobArgs(args []string) (apiclient.JobRequest, error) {
	var req apiclient.JobRequest
	var title []string

	for _, arg := range args {
		if raw, ok := strings.CutPrefix(arg, "salary="); ok {
			salary, err := strconv.Atoi(raw)
			if err != nil {
				return req, fmt.Errorf("salary must be a number")
			}
			req.Salary = salary
			continue
		}
		title = append(title, arg)
	}

	req.Title = strings.Join(title, " ")

	return req, nil
}

// turns "/employer/preferences" into ["/", "employer", "preferences"]
func parseRoute(path string) []string {
	route := []string{"/"}

	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			route = append(route, segment)
		}
	}

	return route
}
