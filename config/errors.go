package config

import "github.com/malawski/cloudworkflowsimulator/errors"

// Sentinel errors for pricing configuration validation.
var (
	// ErrConfigEmpty is returned when the config data is empty (zero bytes).
	ErrConfigEmpty = errors.New("pricing configuration is empty")

	// ErrModelUnknown is returned when model is neither simple nor google.
	ErrModelUnknown = errors.New("model must be simple or google")

	// ErrBillingTime is returned when billingTimeInSeconds is not positive.
	ErrBillingTime = errors.New("billingTimeInSeconds must be positive")

	// ErrFirstBillingTime is returned when the google model has no positive
	// firstBillingTimeInSeconds.
	ErrFirstBillingTime = errors.New("firstBillingTimeInSeconds must be positive for the google model")

	// ErrNegativePrice is returned when priceForBillingUnit is negative.
	ErrNegativePrice = errors.New("priceForBillingUnit must not be negative")
)
