package presenter

import "slices"

// severity of a toast notification
type ToastType string

const (
	ToastError     ToastType = "error"
	ToastAttention ToastType = "attention"
	ToastInfo      ToastType = "info"
	ToastSuccess   ToastType = "success"
)

// classification of the acting user
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

type Company struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// the user on whose behalf requests are made
type ActingUser struct {
	ID      string   `json:"id,omitempty"`
	Email   string   `json:"email,omitempty"`
	Role    Role     `json:"role"`
	Company *Company `json:"company,omitempty"`
}

// reports whether the user is an employee
func (u *ActingUser) IsEmployee() bool {
	return u != nil && u.Role == RoleEmployee
}

// a single user-facing message produced from an error payload
type DisplayMessage struct {
	Text  string    `json:"text"`
	Link  string    `json:"link,omitempty"`
	Route []string  `json:"route,omitempty"`
	Type  ToastType `json:"type,omitempty"`

	// set by the dispatcher for messages that carry a route
	Action func() `json:"-"`
}

// returns the message type, falling back to error severity
func (m DisplayMessage) Severity() ToastType {
	if m.Type == "" {
		return ToastError
	}

	return m.Type
}

// the user context a derivation runs with
type DeriveContext struct {
	User *ActingUser

	// most recently observed employer email, which may belong to an earlier
	// user update than User
	EmployerEmail string
}

// route the dispatcher navigates to after an authorization failure
var RootRoute = []string{"/"}

// route of the employer profile setup screen
var ProfileRoute = []string{"/", "employer", "preferences", "profile"}

func cloneRoute(route []string) []string {
	return slices.Clone(route)
}
