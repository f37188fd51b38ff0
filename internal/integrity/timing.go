// Package integrity checks that individual records are self-consistent.
package integrity

import (
	"fmt"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// TimingValidator requires every job, transfer and VM to finish no earlier
// than it started.
type TimingValidator struct{}

// NewTimingValidator creates the "timing" validator.
func NewTimingValidator() *TimingValidator {
	return &TimingValidator{}
}

func (v *TimingValidator) Name() string { return "timing" }

func (v *TimingValidator) Validate(in *contracts.ValidationInput) contracts.ValidationResult {
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}
	}

	var errs []string
	for _, vm := range in.Log.VMs() {
		if vm.Finished < vm.Started {
			errs = append(errs, fmt.Sprintf("VM %s terminated (%v) before it started (%v)", vm.ID, vm.Finished, vm.Started))
		}
	}
	for _, t := range in.Log.Tasks() {
		if t.Finished < t.Started {
			errs = append(errs, fmt.Sprintf("Job %s (task %s, workflow %s) finished (%v) before it started (%v)",
				t.ID, t.TaskID, t.WorkflowID, t.Finished, t.Started))
		}
	}
	for _, tr := range in.Log.Transfers() {
		if tr.Finished < tr.Started {
			errs = append(errs, fmt.Sprintf("Transfer %s of file %s finished (%v) before it started (%v)",
				tr.ID, tr.FileID, tr.Finished, tr.Started))
		}
	}
	return contracts.ValidationResult{Errors: errs}
}
