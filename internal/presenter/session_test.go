package presenter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Observe(t *testing.T) {
	s := NewSession()

	s.Observe(nil)
	assert.Nil(t, s.CurrentUser())

	employer := &ActingUser{Role: RoleEmployer, Company: &Company{Email: "hr@acme.test"}}
	s.Observe(employer)
	assert.Equal(t, employer, s.CurrentUser())
	assert.Equal(t, "hr@acme.test", s.DeriveContext().EmployerEmail)

	employee := &ActingUser{Role: RoleEmployee}
	s.Observe(employee)

	dc := s.DeriveContext()
	assert.Equal(t, employee, dc.User)
	assert.Equal(t, "hr@acme.test", dc.EmployerEmail)
}

func TestSession_ClearAuthorization(t *testing.T) {
	s := NewSession()
	s.SetToken("abc")
	s.Observe(&ActingUser{Role: RoleEmployee})
	require.True(t, s.Authorized())

	cleared := 0
	s.OnClear(func() { cleared++ })

	s.ClearAuthorization()

	assert.False(t, s.Authorized())
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, cleared)
	assert.NotNil(t, s.CurrentUser(), "user survives clearing the token")
}

func TestSession_WatchAppliesUpdates(t *testing.T) {
	s := NewSession()
	updates := make(chan *ActingUser)

	done := make(chan struct{})
	go func() {
		s.Watch(context.Background(), updates)
		close(done)
	}()

	updates <- &ActingUser{Role: RoleEmployee, Company: &Company{Email: "a@co.com"}}
	updates <- nil
	close(updates)
	<-done

	assert.Equal(t, "a@co.com", s.DeriveContext().EmployerEmail)
}

func TestSession_WatchStopsOnCancel(t *testing.T) {
	s := NewSession()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Watch(ctx, make(chan *ActingUser))
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop")
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Observe(&ActingUser{Role: RoleEmployee, Company: &Company{Email: "x@co.com"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.DeriveContext()
		}()
	}

	wg.Wait()
	assert.Equal(t, "x@co.com", s.DeriveContext().EmployerEmail)
}
