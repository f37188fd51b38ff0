package config

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Validator validates pricing configurations.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns nil if cfg is usable, or an error describing the first
// failure. Unknown models are also marked ErrUnknownPricingModel.
func (v *Validator) Validate(cfg *PricingConfig) error {
	if cfg == nil {
		return ErrConfigEmpty
	}

	switch contracts.PricingModelKind(cfg.Model) {
	case contracts.PricingSimple, contracts.PricingGoogle:
	default:
		return errors.Mark(errors.Wrapf(ErrModelUnknown, "model=%q", cfg.Model), contracts.ErrUnknownPricingModel)
	}

	if cfg.BillingTimeInSeconds <= 0 {
		return errors.Wrapf(ErrBillingTime, "billingTimeInSeconds=%v", cfg.BillingTimeInSeconds)
	}

	if contracts.PricingModelKind(cfg.Model) == contracts.PricingGoogle && cfg.FirstBillingTimeInSeconds <= 0 {
		return errors.Wrapf(ErrFirstBillingTime, "firstBillingTimeInSeconds=%v", cfg.FirstBillingTimeInSeconds)
	}

	if cfg.DefaultPrice < 0 {
		return errors.Wrapf(ErrNegativePrice, "priceForBillingUnit=%v", cfg.DefaultPrice)
	}
	return nil
}
