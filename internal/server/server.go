package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/taxflow/internal/catalog"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	"github.com/smallbiznis/taxflow/internal/config"
	"github.com/smallbiznis/taxflow/internal/observability"
	obsmiddleware "github.com/smallbiznis/taxflow/internal/observability/logger"
	"github.com/smallbiznis/taxflow/internal/observability/metrics"
	"github.com/smallbiznis/taxflow/internal/order"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	"github.com/smallbiznis/taxflow/internal/taxengine"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	"github.com/smallbiznis/taxflow/internal/taxrate"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	"github.com/smallbiznis/taxflow/internal/taxreport"
	taxreportdomain "github.com/smallbiznis/taxflow/internal/taxreport/domain"
	"github.com/smallbiznis/taxflow/internal/taxsettings"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	"github.com/smallbiznis/taxflow/internal/taxzone"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	observability.Module,
	taxzone.Module,
	taxrate.Module,
	taxsettings.Module,
	catalog.Module,
	taxengine.Module,
	order.Module,
	taxreport.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	engineSvc   taxenginedomain.Service
	reportSvc   taxreportdomain.Service
	zoneSvc     taxzonedomain.Service
	rateSvc     taxratedomain.Service
	settingsSvc taxsettingsdomain.Service
	orderSvc    orderdomain.Service
	products    catalogdomain.Repository
	genID       *snowflake.Node
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	EngineSvc   taxenginedomain.Service
	ReportSvc   taxreportdomain.Service
	ZoneSvc     taxzonedomain.Service
	RateSvc     taxratedomain.Service
	SettingsSvc taxsettingsdomain.Service
	OrderSvc    orderdomain.Service
	Products    catalogdomain.Repository
	GenID       *snowflake.Node
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		engineSvc:   p.EngineSvc,
		reportSvc:   p.ReportSvc,
		zoneSvc:     p.ZoneSvc,
		rateSvc:     p.RateSvc,
		settingsSvc: p.SettingsSvc,
		orderSvc:    p.OrderSvc,
		products:    p.Products,
		genID:       p.GenID,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(s *Server) {
	v1 := s.engine.Group("/v1")

	tax := v1.Group("/tax")
	{
		tax.POST("/calculations", s.CalculateTax)
		tax.GET("/reports", s.GenerateTaxReport)

		tax.GET("/zones", s.ListTaxZones)
		tax.POST("/zones", s.CreateTaxZone)
		tax.GET("/zones/:id", s.GetTaxZoneByID)
		tax.PATCH("/zones/:id", s.UpdateTaxZone)
		tax.DELETE("/zones/:id", s.DeleteTaxZone)

		tax.GET("/rates", s.ListTaxRates)
		tax.POST("/rates", s.CreateTaxRate)
		tax.GET("/rates/:id", s.GetTaxRateByID)
		tax.PATCH("/rates/:id", s.UpdateTaxRate)
		tax.POST("/rates/:id/disable", s.DisableTaxRate)

		tax.GET("/settings", s.GetTaxSettings)
		tax.PATCH("/settings", s.UpdateTaxSettings)
	}

	v1.GET("/products", s.ListProducts)
	v1.POST("/products", s.CreateProduct)

	v1.POST("/orders", s.Checkout)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:id", s.GetOrderByID)
}
