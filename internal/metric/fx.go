package metric

import (
	"github.com/roomledger/roomledger/internal/metric/repository"
	"github.com/roomledger/roomledger/internal/metric/service"
	"go.uber.org/fx"
)

var Module = fx.Module("metric",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
