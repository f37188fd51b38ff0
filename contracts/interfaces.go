package contracts

import "context"

// Validator checks one correctness property of an execution log.
// Implementations are pure functions of their input and safe to run
// concurrently with each other.
type Validator interface {
	// Name identifies the validator on the command line and in reports.
	Name() string

	// Validate returns every violation found; it never stops at the first.
	Validate(in *ValidationInput) ValidationResult
}

// PricingModel turns VM runtime into money.
type PricingModel interface {
	// Kind returns the model tag.
	Kind() PricingModelKind

	// BilledUnits returns how many billing units are charged for runtime.
	BilledUnits(runtime Seconds) float64

	// Cost returns the charge for runtime at the given price per billing unit.
	Cost(pricePerUnit float64, runtime Seconds) float64
}

// Orchestrator runs a set of validators over one execution log.
type Orchestrator interface {
	// Run executes every configured validator and concatenates their errors
	// in validator order. A validator finding errors never prevents the
	// others from running.
	//
	// Returns an error only for unusable input (ErrInvalidInput) or when ctx
	// is done before validation starts.
	Run(ctx context.Context, in *ValidationInput) (ValidationResult, error)
}
