package users

import (
	"net/mail"
	"regexp"

	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/errors"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

// reports per-field problems with a profile update. address errors are
// nested under "address" the way the form nests them.
func validateProfile(userRepo *users.Repository, userID string, req UpdateProfileRequest) errors.FieldErrors {
	fields := errors.FieldErrors{}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fields["email"] = errors.Field("Enter a valid email address.", errors.CodeInvalid)
		} else if userRepo.EmailTaken(req.Email, userID) {
			fields["email"] = errors.Field("This email is already in use.", errors.CodeUnique)
		}
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		fields["phone"] = errors.Field("Enter a valid phone number.", errors.CodeInvalid)
	}

	if req.Address != nil && req.Address.Zip != "" && !zipPattern.MatchString(req.Address.Zip) {
		fields["address"] = errors.FieldErrors{
			"zip": errors.Field("Enter a valid zip code.", errors.CodeInvalid),
		}
	}

	return fields
}
