package taxsettings

import (
	"github.com/smallbiznis/taxflow/internal/taxsettings/repository"
	"github.com/smallbiznis/taxflow/internal/taxsettings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxsettings.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
