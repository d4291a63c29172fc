package taxengine

import (
	"github.com/smallbiznis/taxflow/internal/taxengine/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxengine.service",
	fx.Provide(service.NewService),
)
