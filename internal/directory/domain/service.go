package domain

import (
	"context"
	"errors"
)

type CreateAccountRequest struct {
	Username     string
	DomainID     int64
	PasswordHash string
}

// Stats summarizes the directory for the operator endpoint.
type Stats struct {
	TotalAccounts  int64    `json:"totalUsers"`
	RecentAccounts int64    `json:"recentUsers"`
	Domains        []string `json:"domains"`
}

type Service interface {
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	DomainID(ctx context.Context) (int64, error)
	CreateAccount(ctx context.Context, req CreateAccountRequest) (Account, error)
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
}

var (
	ErrDomainNotFound = errors.New("domain_not_found")
	ErrEmailTaken     = errors.New("email_taken")
)
