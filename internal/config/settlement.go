package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

type SettlementConfig struct {
	// Canonical zone for maturity and period arithmetic.
	Timezone         string        `mapstructure:"timezone"`
	MaturityInterval time.Duration `mapstructure:"maturity-interval"`
	// Standard 5-field cron expression evaluated in Timezone.
	DistributionCron string        `mapstructure:"distribution-cron"`
	PayoutDelay      time.Duration `mapstructure:"payout-delay"`
	// Fraction of the pool distributed each period, e.g. "0.5".
	DistributionRate string `mapstructure:"distribution-rate"`

	Location *time.Location  `mapstructure:"-"`
	Rate     decimal.Decimal `mapstructure:"-"`
}

func (cfg *SettlementConfig) Validate() error {
	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	cfg.Location = loc

	if cfg.MaturityInterval <= 0 {
		return errors.New("maturity-interval must be positive")
	}

	if _, err := cron.ParseStandard(cfg.DistributionCron); err != nil {
		return fmt.Errorf("invalid distribution-cron: %w", err)
	}

	if cfg.PayoutDelay < 0 {
		return errors.New("payout-delay cannot be negative")
	}

	rate, err := decimal.NewFromString(cfg.DistributionRate)
	if err != nil {
		return fmt.Errorf("invalid distribution-rate: %w", err)
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return errors.New("distribution-rate must be in (0, 1]")
	}
	cfg.Rate = rate

	return nil
}
