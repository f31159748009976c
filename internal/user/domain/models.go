package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role names understood by the external auth collaborator.
const (
	RoleAdmin    = "admin"
	RoleReporter = "reporter"
	RoleViewer   = "viewer"
)

// User is a reporting identity. Authentication and sessions live outside this
// service; the record store only needs to resolve creators to active accounts.
type User struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Username  string       `gorm:"type:text;not null;uniqueIndex" json:"username"`
	FullName  string       `gorm:"type:text" json:"full_name"`
	Role      string       `gorm:"type:text;not null;default:reporter" json:"role"`
	IsActive  bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
