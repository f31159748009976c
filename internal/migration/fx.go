package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/seed"
	userdomain "github.com/roomledger/roomledger/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migration",
	fx.Invoke(apply),
)

func apply(cfg config.Config, conn *gorm.DB, node *snowflake.Node, users userdomain.Repository) error {
	if err := Run(cfg, conn); err != nil {
		return err
	}
	return seed.EnsureReporter(context.Background(), conn, node, users)
}
