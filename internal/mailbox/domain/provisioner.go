package domain

import (
	"context"
	"errors"
)

// Provisioner asks the mail backend to create the physical mailbox for a
// freshly registered address. Callers treat failures as best-effort.
type Provisioner interface {
	Provision(ctx context.Context, email string) error
}

var ErrBackendRejected = errors.New("backend_rejected")
