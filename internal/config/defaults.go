package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EngineDefaults are the fallback tax settings used until an operator stores
// an explicit settings row. They live in a small YAML file so deployments can
// change them without a rebuild.
type EngineDefaults struct {
	CalculateTaxBasedOn string `mapstructure:"calculateTaxBasedOn"`
	ShippingTaxClass    string `mapstructure:"shippingTaxClass"`
	RoundTaxAtSubtotal  bool   `mapstructure:"roundTaxAtSubtotal"`
	PricesIncludeTax    bool   `mapstructure:"pricesIncludeTax"`
	ReportMaxRangeDays  int    `mapstructure:"reportMaxRangeDays"`
}

func DefaultEngineDefaults() EngineDefaults {
	return EngineDefaults{
		CalculateTaxBasedOn: "shipping",
		ShippingTaxClass:    "standard",
		RoundTaxAtSubtotal:  true,
		PricesIncludeTax:    false,
		ReportMaxRangeDays:  366,
	}
}

// EngineDefaultsHolder exposes the current defaults snapshot with hot reload.
type EngineDefaultsHolder struct {
	current atomic.Value // holds EngineDefaults
}

// NewStaticEngineDefaultsHolder wraps a fixed snapshot, with no file watching.
// Used by embedders and tests that do not want config discovery.
func NewStaticEngineDefaultsHolder(cfg EngineDefaults) *EngineDefaultsHolder {
	holder := &EngineDefaultsHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewEngineDefaultsHolder() (*EngineDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("defaults")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/taxflow/config") // Volume-mounted config
	v.AddConfigPath("/etc/taxflow")            // System config
	v.AddConfigPath(".")                       // Current directory (dev mode)

	v.SetEnvPrefix("TAXFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultEngineDefaults()
		v.SetDefault("engine.calculateTaxBasedOn", defaults.CalculateTaxBasedOn)
		v.SetDefault("engine.shippingTaxClass", defaults.ShippingTaxClass)
		v.SetDefault("engine.roundTaxAtSubtotal", defaults.RoundTaxAtSubtotal)
		v.SetDefault("engine.pricesIncludeTax", defaults.PricesIncludeTax)
		v.SetDefault("engine.reportMaxRangeDays", defaults.ReportMaxRangeDays)
	}

	var cfg EngineDefaults
	if err := v.UnmarshalKey("engine", &cfg); err != nil {
		return nil, err
	}
	if err := validateEngineDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &EngineDefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated EngineDefaults
		if err := v.UnmarshalKey("engine", &updated); err != nil {
			log.Printf("[engine-defaults] reload failed: %v", err)
			return
		}
		if err := validateEngineDefaults(updated); err != nil {
			log.Printf("[engine-defaults] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// Current returns the active defaults snapshot.
func (h *EngineDefaultsHolder) Current() EngineDefaults {
	cfg, ok := h.current.Load().(EngineDefaults)
	if !ok {
		return DefaultEngineDefaults()
	}
	return cfg
}

func validateEngineDefaults(cfg EngineDefaults) error {
	switch cfg.CalculateTaxBasedOn {
	case "shipping", "billing":
	default:
		return errors.New("calculateTaxBasedOn must be shipping or billing")
	}
	if cfg.ReportMaxRangeDays <= 0 {
		return errors.New("reportMaxRangeDays must be positive")
	}
	return nil
}
