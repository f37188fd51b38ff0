package ordering

import (
	"fmt"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// OrderValidator requires every parent task to finish no later than each
// of its children starts. Tasks missing from the log are skipped.
type OrderValidator struct{}

// NewOrderValidator creates the "order" validator.
func NewOrderValidator() *OrderValidator {
	return &OrderValidator{}
}

func (v *OrderValidator) Name() string { return "order" }

func (v *OrderValidator) Validate(in *contracts.ValidationInput) contracts.ValidationResult {
	var errs []string
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}
	}

	done := indexCompleted(in.Log)
	for _, d := range sortedDAGs(in.DAGs) {
		for _, parent := range d.Tasks {
			parentRun, ok := done.lookup(d.Workflow, parent.ID)
			if !ok {
				continue
			}
			for _, child := range parent.After {
				childRun, ok := done.lookup(d.Workflow, child.ID)
				if !ok {
					continue
				}
				if parentRun.Finished > childRun.Started {
					errs = append(errs, fmt.Sprintf(
						"Task %s was not done before task finished %s in workflow %s (child started %v, parent finished %v)",
						child.ID, parent.ID, d.Workflow, childRun.Started, parentRun.Finished))
				}
			}
		}
	}
	return contracts.ValidationResult{Errors: errs}
}
