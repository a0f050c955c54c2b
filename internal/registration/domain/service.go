package domain

import (
	"context"
	"errors"
)

// Request carries one registration attempt. Profile fields beyond the
// credentials are recorded for admin purposes only.
type Request struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
}

// Outcome is the result of a successful registration.
type Outcome struct {
	Email   string
	Message string
}

// Availability is the result of a username availability check.
type Availability struct {
	Available bool
	Message   string
}

type Service interface {
	Register(ctx context.Context, req Request) (Outcome, error)
	CheckUsername(ctx context.Context, username string) (Availability, error)
}

var (
	ErrMissingFields  = errors.New("missing_fields")
	ErrWeakPassword   = errors.New("weak_password")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidGender  = errors.New("invalid_gender")
	ErrInvalidCountry = errors.New("invalid_country")
	ErrUsernameTaken  = errors.New("username_taken")
)

// InvalidUsernameError carries the policy message shown to the user.
type InvalidUsernameError struct {
	Reason string
}

func (e InvalidUsernameError) Error() string {
	return "invalid_username: " + e.Reason
}
