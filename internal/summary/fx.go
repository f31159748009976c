package summary

import (
	"github.com/roomledger/roomledger/internal/summary/service"
	"go.uber.org/fx"
)

var Module = fx.Module("summary",
	fx.Provide(service.New),
)
