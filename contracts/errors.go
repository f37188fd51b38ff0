package contracts

import "github.com/malawski/cloudworkflowsimulator/errors"

// Sentinel errors. Validation findings are never reported through these:
// they are strings in ValidationResult.
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input: nil or malformed")
	ErrFormat       = errors.New("malformed execution log")

	// DAG errors
	ErrDAGCycle    = errors.New("cycle detected in task dependencies")
	ErrDAGInvalid  = errors.New("invalid DAG structure")
	ErrUnknownTask = errors.New("unknown DAG task")

	// Configuration errors
	ErrUnknownPricingModel = errors.New("unknown pricing model")
	ErrUnknownValidator    = errors.New("unknown validator")

	// Report errors
	ErrReportNotFound = errors.New("validation report not found")
)
