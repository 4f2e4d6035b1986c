// Package config holds the inventory application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Database   config.DatabaseConfig `koanf:"database"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Metrics    config.MetricsConfig  `koanf:"metrics"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
	Currency   CurrencyConfig        `koanf:"currency"`
}

// CurrencyConfig selects the ISO 4217 currency used to format amounts.
type CurrencyConfig struct {
	Code string `koanf:"code"`
}

func (c *CurrencyConfig) Validate() error {
	if c.Code == "" {
		c.Code = money.BRL
	}
	c.Code = strings.ToUpper(c.Code)
	if money.GetCurrency(c.Code) == nil {
		return fmt.Errorf("unknown currency code: %q", c.Code)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Metrics.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString("\n--- Currency ---\n")
	b.WriteString(fmt.Sprintf("  code: %s\n", c.Currency.Code))
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Currency.Validate(); err != nil {
		return err
	}
	return nil
}
