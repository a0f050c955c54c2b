package repository

import (
	"context"
	"time"

	"github.com/aurafarming/mailportal/internal/directory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindDomainIDByName(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var id int64
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM virtual_domains WHERE name = ?`,
		name,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ListDomainNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Raw(
		`SELECT name FROM virtual_domains ORDER BY name`,
	).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repo) EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM virtual_users WHERE email = ?`,
		email,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) InsertAccount(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO virtual_users (id, domain_id, email, password, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		account.ID,
		account.DomainID,
		account.Email,
		account.Password,
		account.CreatedAt,
	).Error
}

func (r *repo) CountAccounts(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM virtual_users`,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) CountAccountsSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM virtual_users WHERE created_at >= ?`,
		since,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
