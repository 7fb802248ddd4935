package websocket

import "codeberg.org/capworks/portal/cap/users"

// looks up the user a connection belongs to
type UserFinder interface {
	FindByID(userID string) (*users.User, error)
}
