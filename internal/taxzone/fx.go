package taxzone

import (
	"github.com/smallbiznis/taxflow/internal/taxzone/repository"
	"github.com/smallbiznis/taxflow/internal/taxzone/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxzone.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewService),
)
