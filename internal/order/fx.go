package order

import (
	"github.com/smallbiznis/taxflow/internal/order/repository"
	"github.com/smallbiznis/taxflow/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
