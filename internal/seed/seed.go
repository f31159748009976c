// Package seed inserts baseline rows a fresh database needs to accept
// traffic.
package seed

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/roomledger/roomledger/internal/user/domain"
	"gorm.io/gorm"
)

const defaultReporter = "reporter"

// EnsureReporter guarantees at least one active reporter account exists.
func EnsureReporter(ctx context.Context, conn *gorm.DB, node *snowflake.Node, users userdomain.Repository) error {
	existing, err := users.FindByUsername(ctx, conn, defaultReporter)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return users.Insert(ctx, conn, &userdomain.User{
		ID:        node.Generate(),
		Username:  defaultReporter,
		FullName:  "Default Reporter",
		Role:      userdomain.RoleReporter,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
}
