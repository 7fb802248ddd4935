package presenter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// records every collaborator call in order
type recorder struct {
	calls     []string
	emitted   []DisplayMessage
	severity  []ToastType
	routes    [][]string
	modalOpen bool
	dc        DeriveContext
}

func (r *recorder) Emit(msg DisplayMessage, severity ToastType) {
	r.calls = append(r.calls, "emit")
	r.emitted = append(r.emitted, msg)
	r.severity = append(r.severity, severity)
}

func (r *recorder) NavigateTo(route []string) {
	r.calls = append(r.calls, "navigate")
	r.routes = append(r.routes, route)
}

func (r *recorder) ClearAuthorization() {
	r.calls = append(r.calls, "clear")
}

func (r *recorder) DeriveContext() DeriveContext {
	return r.dc
}

func (r *recorder) Open() {
	r.calls = append(r.calls, "modal")
	r.modalOpen = true
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeResponse) Error() string   { return "status " + strconv.Itoa(f.status) }
func (f *fakeResponse) StatusCode() int { return f.status }
func (f *fakeResponse) Payload() (ErrorPayload, error) {
	return ParsePayload([]byte(f.body))
}

func newTestDispatcher(r *recorder) *Dispatcher {
	return NewDispatcher(NewDeriver(DefaultDictionary(), DefaultTexts()), Collaborators{
		Notifier:  r,
		Navigator: r,
		Session:   r,
		Modal:     r,
	})
}

func TestDispatch_NonStructuredError(t *testing.T) {
	inputs := []error{
		errors.New("connection refused"),
		context.DeadlineExceeded,
		fmt.Errorf("wrapped: %w", errors.New("boom")),
		nil,
	}

	for _, in := range inputs {
		r := &recorder{}
		action := newTestDispatcher(r).Dispatch(context.Background(), in)

		assert.Equal(t, KindGeneric, action.Kind)
		assert.Equal(t, []string{"emit"}, r.calls)
		require.Len(t, r.emitted, 1)
		assert.Equal(t, DefaultTexts().PermissionError, r.emitted[0].Text)
		assert.Equal(t, ToastError, r.severity[0])
		assert.False(t, r.modalOpen)
		assert.Empty(t, r.routes)
	}
}

func TestDispatch_Unauthorized(t *testing.T) {
	r := &recorder{}

	action := newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 401, body: `{"detail": "x"}`})

	assert.Equal(t, KindUnauthorized, action.Kind)
	assert.Equal(t, 401, action.Status)
	assert.Equal(t, []string{"clear", "navigate"}, r.calls)
	assert.Equal(t, [][]string{{"/"}}, r.routes)
	assert.Empty(t, r.emitted)
}

func TestDispatch_NotFound(t *testing.T) {
	r := &recorder{}

	action := newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 404, body: `{}`})

	assert.Equal(t, KindNotFound, action.Kind)
	assert.Empty(t, r.calls)
}

func TestDispatch_ServerFault(t *testing.T) {
	r := &recorder{}

	// a derivable body must not produce toasts alongside the modal
	body := `{"email": [{"message": "bad", "code": "x"}]}`
	action := newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 500, body: body})

	assert.Equal(t, KindServerFault, action.Kind)
	assert.True(t, r.modalOpen)
	assert.Equal(t, []string{"modal"}, r.calls)
	assert.Empty(t, action.Messages)
}

func TestDispatch_ValidationEmitsDerivedMessages(t *testing.T) {
	r := &recorder{}

	body := `{
		"email": [{"message": "bad", "code": "x"}],
		"company": [{"__all__": [{"message": "incomplete", "code": "incomplete_profile"}]}]
	}`
	action := newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 400, body: body})

	assert.Equal(t, KindValidation, action.Kind)
	require.Len(t, r.emitted, 3)
	assert.Equal(t, []string{"bad ", "incomplete ", DefaultTexts().NoProfile}, texts(r.emitted))
	assert.Equal(t, []ToastType{ToastError, ToastError, ToastAttention}, r.severity)
	assert.Empty(t, r.routes, "actions must not run on emit")

	assert.Nil(t, r.emitted[0].Action)
	require.NotNil(t, r.emitted[2].Action)

	r.emitted[2].Action()
	assert.Equal(t, [][]string{{"/", "employer", "preferences", "profile"}}, r.routes)
}

func TestDispatch_ValidationUsesSessionContext(t *testing.T) {
	r := &recorder{dc: DeriveContext{User: &ActingUser{Role: RoleEmployee}, EmployerEmail: "boss@co.com"}}

	body := `{"job": [{"message": "m", "code": "incomplete_profile"}]}`
	newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 403, body: body})

	require.Len(t, r.emitted, 2)
	assert.Equal(t, " Please contact your employer boss@co.com", r.emitted[1].Text)
}

func TestDispatch_UnreadableBodyFallsBack(t *testing.T) {
	for _, body := range []string{`<html/>`, `["x"]`, ``} {
		r := &recorder{}

		action := newTestDispatcher(r).Dispatch(context.Background(), &fakeResponse{status: 422, body: body})

		assert.Equal(t, KindValidation, action.Kind)
		assert.Equal(t, []string{UnknownErrorText}, texts(r.emitted))
	}
}

func TestDispatch_WrappedResponse(t *testing.T) {
	r := &recorder{}

	err := fmt.Errorf("update profile: %w", &fakeResponse{status: 401})
	action := newTestDispatcher(r).Dispatch(context.Background(), err)

	assert.Equal(t, KindUnauthorized, action.Kind)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindUnauthorized},
		{404, KindNotFound},
		{500, KindServerFault},
		{400, KindValidation},
		{403, KindValidation},
		{429, KindValidation},
		{502, KindValidation},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			kind, resp := Classify(&fakeResponse{status: tt.status})

			assert.Equal(t, tt.want, kind)
			assert.NotNil(t, resp)
		})
	}
}

func TestAttach_EmitsPendingAccessMessageOnce(t *testing.T) {
	r := &recorder{}
	d := newTestDispatcher(r)
	stream := NewErrorStream(4)

	d.Attach(stream)
	assert.Empty(t, r.emitted)

	stream.FlagAccessDenied()
	d.Attach(stream)
	d.Attach(stream)

	assert.Equal(t, []string{DefaultTexts().PermissionError}, texts(r.emitted))
}
