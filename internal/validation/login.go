package validation

import (
	"strings"

	"github.com/nmm-portal/nmm-api/internal/models"
)

// ValidateLogin checks the login form. An identifier containing "@" is
// validated as an email, anything else as a mobile number. The password is
// only required for password logins.
func ValidateLogin(identifier, password string, role models.Role, method models.LoginMethod) ValidationErrors {
	errs := ValidationErrors{}

	switch {
	case identifier == "":
		errs.add("emailOrMobile", CodeRequired, "Email or mobile number is required")
	case strings.Contains(identifier, "@"):
		if !ValidateEmail(identifier) {
			errs.add("emailOrMobile", CodeInvalid, "Invalid email format")
		}
	default:
		if !ValidateMobile(identifier) {
			errs.add("emailOrMobile", CodeInvalid, "Invalid mobile number format")
		}
	}

	if method != models.LoginMethodOTP && password == "" {
		errs.add("password", CodeRequired, "Password is required")
	}

	if role == "" {
		errs.add("role", CodeRequired, "Role selection is required")
	}

	return errs
}
