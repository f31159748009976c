package audit

import (
	"github.com/roomledger/roomledger/internal/audit/repository"
	"github.com/roomledger/roomledger/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
