package cost

import (
	"fmt"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// Validator is the "cost" validator: no VM may outlive the deadline and the
// fleet may not cost more than the budget.
type Validator struct {
	catalog *Catalog
}

// NewValidator creates the "cost" validator with the default catalog.
func NewValidator() *Validator {
	return NewValidatorWithCatalog(nil)
}

// NewValidatorWithCatalog creates the "cost" validator with a custom catalog.
func NewValidatorWithCatalog(catalog *Catalog) *Validator {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Validator{catalog: catalog}
}

func (v *Validator) Name() string { return "cost" }

// Validate reports every VM finishing after the deadline, then one error if
// the fleet cost exceeds the budget. Reaching the budget exactly is allowed.
func (v *Validator) Validate(in *contracts.ValidationInput) contracts.ValidationResult {
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}
	}
	settings := in.Log.Settings
	vms := in.Log.VMs()

	var errs []string
	for _, vm := range vms {
		if vm.Finished > settings.Deadline {
			errs = append(errs, fmt.Sprintf("VM %s lifecycle (%v - %v) exceeded constrained deadline (%v).",
				vm.ID, vm.Started, vm.Finished, settings.Deadline))
		}
	}

	calc, err := NewCalculatorForParams(v.catalog, settings.Pricing)
	if err != nil {
		return contracts.ValidationResult{Errors: append(errs, fmt.Sprintf("Total VMs cost unknown: %v", err))}
	}
	if total := calc.Total(vms); total > settings.Budget {
		errs = append(errs, fmt.Sprintf("Total VMs cost (%v) exceeded budget (%v)", total, settings.Budget))
	}
	return contracts.ValidationResult{Errors: errs}
}
