// Package config loads the pricing configuration and the CLI and server
// settings.
package config

import "github.com/malawski/cloudworkflowsimulator/contracts"

// Pricing defaults, matching the simulator's default.pricing.yaml.
const (
	DefaultPricingModel = contracts.PricingSimple
	DefaultBillingTime  = 3600
)

// PricingConfig is the YAML pricing description.
type PricingConfig struct {
	Model                     string  `yaml:"model"`
	BillingTimeInSeconds      float64 `yaml:"billingTimeInSeconds"`
	FirstBillingTimeInSeconds float64 `yaml:"firstBillingTimeInSeconds"`
	// DefaultPrice prices VMs whose trace does not state a price.
	DefaultPrice float64 `yaml:"priceForBillingUnit"`
}

// DefaultPricing returns hourly simple pricing.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		Model:                string(DefaultPricingModel),
		BillingTimeInSeconds: DefaultBillingTime,
	}
}

// Params converts the config to pricing parameters.
func (c PricingConfig) Params() contracts.PricingParams {
	return contracts.PricingParams{
		Model:                     contracts.PricingModelKind(c.Model),
		BillingTimeInSeconds:      c.BillingTimeInSeconds,
		FirstBillingTimeInSeconds: c.FirstBillingTimeInSeconds,
	}
}
