package taxrate

import (
	"github.com/smallbiznis/taxflow/internal/taxrate/repository"
	"github.com/smallbiznis/taxflow/internal/taxrate/service"
	taxzoneservice "github.com/smallbiznis/taxflow/internal/taxzone/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxrate.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(service.NewZoneReferenceChecker),
	fx.Provide(func(c *service.ZoneReferenceChecker) taxzoneservice.ZoneReferenceChecker { return c }),
)
