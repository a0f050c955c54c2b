package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Domain is one mail domain served by the directory. Postfix and Dovecot
// read this table directly, so column names are part of the contract.
type Domain struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func (Domain) TableName() string {
	return "virtual_domains"
}

// Account is one mailbox account. Email carries the unique constraint that
// makes concurrent registrations for the same address safe.
type Account struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	DomainID  int64        `gorm:"not null;index" json:"domain_id"`
	Email     string       `gorm:"not null;uniqueIndex" json:"email"`
	Password  string       `gorm:"not null" json:"-"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Account) TableName() string {
	return "virtual_users"
}
