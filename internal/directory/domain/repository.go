package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindDomainIDByName(ctx context.Context, db *gorm.DB, name string) (int64, error)
	ListDomainNames(ctx context.Context, db *gorm.DB) ([]string, error)
	EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error)
	InsertAccount(ctx context.Context, db *gorm.DB, account *Account) error
	CountAccounts(ctx context.Context, db *gorm.DB) (int64, error)
	CountAccountsSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error)
}
