package taxreport

import (
	"github.com/smallbiznis/taxflow/internal/taxreport/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxreport.service",
	fx.Provide(service.NewService),
)
