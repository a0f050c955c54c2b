package server

import (
	"errors"
	"net/http"

	directorydomain "github.com/aurafarming/mailportal/internal/directory/domain"
	registrationdomain "github.com/aurafarming/mailportal/internal/registration/domain"
)

// registrationErrorResponse maps a workflow error to the status and
// user-facing message for the register endpoint.
func registrationErrorResponse(err error) (int, string) {
	var invalidUsername registrationdomain.InvalidUsernameError
	if errors.As(err, &invalidUsername) {
		return http.StatusBadRequest, invalidUsername.Reason
	}

	switch {
	case errors.Is(err, registrationdomain.ErrMissingFields):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, registrationdomain.ErrWeakPassword):
		return http.StatusBadRequest, "Password is too weak. Please use a stronger password."
	case errors.Is(err, registrationdomain.ErrInvalidDate):
		return http.StatusBadRequest, "Please enter a valid date of birth"
	case errors.Is(err, registrationdomain.ErrInvalidGender):
		return http.StatusBadRequest, "Please select a valid gender"
	case errors.Is(err, registrationdomain.ErrInvalidCountry):
		return http.StatusBadRequest, "Please select your country"
	case errors.Is(err, registrationdomain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already taken"
	default:
		return http.StatusInternalServerError, "Registration failed. Please try again later."
	}
}

// classifyErrorForLog labels request errors for the logging middleware.
// It never exposes user data.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var invalidUsername registrationdomain.InvalidUsernameError
	if errors.As(err, &invalidUsername) {
		return "validation_error", "invalid_username"
	}

	switch {
	case errors.Is(err, registrationdomain.ErrMissingFields):
		return "validation_error", "missing_fields"
	case errors.Is(err, registrationdomain.ErrWeakPassword):
		return "validation_error", "weak_password"
	case errors.Is(err, registrationdomain.ErrInvalidDate):
		return "validation_error", "invalid_date"
	case errors.Is(err, registrationdomain.ErrInvalidGender):
		return "validation_error", "invalid_gender"
	case errors.Is(err, registrationdomain.ErrInvalidCountry):
		return "validation_error", "invalid_country"
	case errors.Is(err, registrationdomain.ErrUsernameTaken):
		return "conflict", "username_taken"
	case errors.Is(err, directorydomain.ErrDomainNotFound):
		return "config_error", "domain_not_found"
	default:
		return "internal_error", "internal"
	}
}
