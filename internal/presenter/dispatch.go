package presenter

import (
	"context"
	"errors"
	"net/http"

	"codeberg.org/capworks/portal/internal/logger"
)

// an error that carries a structured HTTP response
type Response interface {
	error
	StatusCode() int
	Payload() (ErrorPayload, error)
}

// delivers toasts
type Notifier interface {
	Emit(msg DisplayMessage, severity ToastType)
}

// changes the current route
type Navigator interface {
	NavigateTo(route []string)
}

// the slice of the session the dispatcher needs
type SessionState interface {
	ClearAuthorization()
	DeriveContext() DeriveContext
}

// the blocking error modal
type Modal interface {
	Open()
}

type Collaborators struct {
	Notifier  Notifier
	Navigator Navigator
	Session   SessionState
	Modal     Modal
}

// the response an error event gets
type Kind int

const (
	KindGeneric Kind = iota
	KindUnauthorized
	KindNotFound
	KindServerFault
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServerFault:
		return "server_fault"
	case KindValidation:
		return "validation"
	default:
		return "generic"
	}
}

// what the dispatcher did with an error event
type Action struct {
	Kind     Kind
	Status   int
	Messages []DisplayMessage
}

// classifies err. the response is nil for KindGeneric.
func Classify(err error) (Kind, Response) {
	var resp Response
	if err == nil || !errors.As(err, &resp) {
		return KindGeneric, nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return KindUnauthorized, resp
	case http.StatusNotFound:
		return KindNotFound, resp
	case http.StatusInternalServerError:
		return KindServerFault, resp
	default:
		return KindValidation, resp
	}
}

// routes error events to the collaborators according to their kind
type Dispatcher struct {
	deriver   *Deriver
	notifier  Notifier
	navigator Navigator
	session   SessionState
	modal     Modal
}

func NewDispatcher(deriver *Deriver, c Collaborators) *Dispatcher {
	return &Dispatcher{
		deriver:   deriver,
		notifier:  c.Notifier,
		navigator: c.Navigator,
		session:   c.Session,
		modal:     c.Modal,
	}
}

// handles a single error event
func (d *Dispatcher) Dispatch(ctx context.Context, err error) Action {
	kind, resp := Classify(err)
	log := logger.FromContext(ctx)

	action := Action{Kind: kind}
	if resp != nil {
		action.Status = resp.StatusCode()
	}

	switch kind {
	case KindUnauthorized:
		d.session.ClearAuthorization()
		d.navigator.NavigateTo(cloneRoute(RootRoute))

	case KindNotFound:
		log.Info("not found", "error", err)

	case KindServerFault:
		log.Warn("server error", "error", err)
		d.modal.Open()

	case KindValidation:
		action.Messages = d.validationMessages(ctx, resp)
		for _, msg := range action.Messages {
			d.notifier.Emit(msg, msg.Severity())
		}

	default:
		log.Debug("unstructured error", "error", err)
		msg := d.permissionMessage()
		action.Messages = []DisplayMessage{msg}
		d.notifier.Emit(msg, ToastError)
	}

	return action
}

// emits the pending access-denied notice once, if the stream has one
func (d *Dispatcher) Attach(stream *ErrorStream) {
	if stream.TakeAccessMessage() {
		d.notifier.Emit(d.permissionMessage(), ToastError)
	}
}

func (d *Dispatcher) validationMessages(ctx context.Context, resp Response) []DisplayMessage {
	payload, err := resp.Payload()
	if err != nil {
		logger.FromContext(ctx).Warn("unreadable error payload",
			"status", resp.StatusCode(),
			"error", err,
		)
		payload = nil
	}

	messages := d.deriver.Derive(payload, d.session.DeriveContext())

	for i := range messages {
		if len(messages[i].Route) == 0 {
			continue
		}

		route := messages[i].Route
		messages[i].Action = func() {
			d.navigator.NavigateTo(cloneRoute(route))
		}
	}

	return messages
}

func (d *Dispatcher) permissionMessage() DisplayMessage {
	return DisplayMessage{Text: d.deriver.Texts().PermissionError}
}
