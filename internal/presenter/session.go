package presenter

import (
	"context"
	"sync"
)

// authorization and user state of the running client.
// user updates arrive from a background stream, hence the lock.
type Session struct {
	mu            sync.RWMutex
	token         string
	user          *ActingUser
	employerEmail string
	onClear       []func()
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Session) Authorized() bool {
	return s.Token() != ""
}

// records a user update. nil updates are ignored and a company email, when
// present, becomes the employer email shown to employees.
func (s *Session) Observe(user *ActingUser) {
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if user.Company != nil {
		s.employerEmail = user.Company.Email
	}
}

// applies updates until ctx is done or the channel closes
func (s *Session) Watch(ctx context.Context, updates <-chan *ActingUser) {
	for {
		select {
		case <-ctx.Done():
			return
		case user, ok := <-updates:
			if !ok {
				return
			}
			s.Observe(user)
		}
	}
}

func (s *Session) CurrentUser() *ActingUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Session) DeriveContext() DeriveContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return DeriveContext{
		User:          s.user,
		EmployerEmail: s.employerEmail,
	}
}

// registers fn to run after the authorization is cleared
func (s *Session) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onClear = append(s.onClear, fn)
}

// drops the bearer token. the observed user is kept.
func (s *Session) ClearAuthorization() {
	s.mu.Lock()
	s.token = ""
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
