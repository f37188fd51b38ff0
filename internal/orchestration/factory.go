package orchestration

import (
	"slices"
	"strings"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/internal/cost"
	"github.com/malawski/cloudworkflowsimulator/internal/integrity"
	"github.com/malawski/cloudworkflowsimulator/internal/ordering"
	"github.com/malawski/cloudworkflowsimulator/internal/resource"
)

// AllValidators selects every validator in DefaultValidatorNames.
const AllValidators = "all"

// DefaultValidatorNames is the run order used for "all".
var DefaultValidatorNames = []string{"order", "transfers", "resource", "cost", "timing"}

// FactoryOptions provides optional customization for orchestrator assembly.
type FactoryOptions struct {
	// PricingCatalog overrides the pricing models known to the cost validator.
	PricingCatalog *cost.Catalog

	// MaxParallelism bounds how many validators run at once. Defaults to 1.
	MaxParallelism int
}

func newValidator(name string, opts FactoryOptions) (contracts.Validator, bool) {
	switch name {
	case "order":
		return ordering.NewOrderValidator(), true
	case "transfers":
		return ordering.NewTransferValidator(), true
	case "resource":
		return resource.NewValidator(), true
	case "cost":
		return cost.NewValidatorWithCatalog(opts.PricingCatalog), true
	case "timing":
		return integrity.NewTimingValidator(), true
	default:
		return nil, false
	}
}

// NewValidators resolves validator names in the given order. "all" expands
// to DefaultValidatorNames; repeated names run once, at their first position.
// An empty list means "all".
func NewValidators(names []string, opts FactoryOptions) ([]contracts.Validator, error) {
	if len(names) == 0 {
		names = []string{AllValidators}
	}

	var expanded []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == AllValidators {
			expanded = append(expanded, DefaultValidatorNames...)
		} else {
			expanded = append(expanded, name)
		}
	}

	var (
		validators []contracts.Validator
		seen       []string
	)
	for _, name := range expanded {
		if slices.Contains(seen, name) {
			continue
		}
		v, ok := newValidator(name, opts)
		if !ok {
			return nil, errors.Wrapf(contracts.ErrUnknownValidator, "validator %q (known: %s)",
				name, strings.Join(DefaultValidatorNames, ", "))
		}
		seen = append(seen, name)
		validators = append(validators, v)
	}
	return validators, nil
}

// dagValidators are the validators that read ValidationInput.DAGs.
var dagValidators = []string{"order", "transfers"}

// NeedsDAGs reports whether any of validators checks the log against
// workflow DAGs.
func NeedsDAGs(validators []contracts.Validator) bool {
	for _, v := range validators {
		if slices.Contains(dagValidators, v.Name()) {
			return true
		}
	}
	return false
}

// NewOrchestratorWithDefaults creates an orchestrator running every
// validator sequentially.
func NewOrchestratorWithDefaults() contracts.Orchestrator {
	o, err := NewOrchestratorWithOptions(nil, FactoryOptions{})
	if err != nil {
		panic(err) // default names always resolve
	}
	return o
}

// NewOrchestratorWithOptions creates an orchestrator for the named validators.
func NewOrchestratorWithOptions(names []string, opts FactoryOptions) (contracts.Orchestrator, error) {
	validators, err := NewValidators(names, opts)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(validators, NewParallelExecutor(opts.MaxParallelism)), nil
}
