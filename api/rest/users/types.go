package users

import "codeberg.org/capworks/portal/cap/users"

// body of PUT /profile. empty fields are left unchanged.
type UpdateProfileRequest struct {
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address *users.Address `json:"address"`
}

// pushes profile changes to the user's live connections
type Publisher interface {
	Notify(userID, msgType string, payload any) error
}
