package seed

import (
	"context"
	"errors"
	"strings"

	directorydomain "github.com/aurafarming/mailportal/internal/directory/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// EnsureDomain seeds the virtual_domains row registrations attach to. It is
// idempotent; an existing row wins over a new id.
func EnsureDomain(db *gorm.DB, name string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("seed domain name is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing directorydomain.Domain
		err := tx.WithContext(ctx).Where("name = ?", name).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.WithContext(ctx).Create(&directorydomain.Domain{
			ID:   node.Generate().Int64(),
			Name: name,
		}).Error
	})
}
