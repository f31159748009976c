package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/roomledger/roomledger/internal/audit"
	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/metric"
	"github.com/roomledger/roomledger/internal/migration"
	"github.com/roomledger/roomledger/internal/observability"
	"github.com/roomledger/roomledger/internal/server"
	"github.com/roomledger/roomledger/internal/summary"
	"github.com/roomledger/roomledger/internal/user"
	"github.com/roomledger/roomledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		user.Module,
		migration.Module,
		audit.Module,
		metric.Module,
		summary.Module,
		server.Module,
	).Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
