package migration

import (
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module creates the schema on startup so the service is usable out of the
// box for local and self-hosted deployments.
var Module = fx.Module("migration",
	fx.Invoke(Run),
)

func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&taxzonedomain.TaxZone{},
		&taxzonedomain.ZoneLocation{},
		&taxratedomain.TaxRate{},
		&taxsettingsdomain.TaxSettings{},
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&orderdomain.OrderTaxDetail{},
	)
}
