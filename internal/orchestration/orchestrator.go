// Package orchestration runs a set of validators over one execution log
// and merges their findings deterministically.
package orchestration

import (
	"context"
	"slices"
	"time"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/internal/audit"
)

// orchestrator implements contracts.Orchestrator.
// Key design: parallel validator execution, sequential deterministic merge.
type orchestrator struct {
	validators []contracts.Validator
	executor   *ParallelExecutor
}

// NewOrchestrator creates an Orchestrator for validators. A nil executor
// runs them sequentially.
func NewOrchestrator(validators []contracts.Validator, executor *ParallelExecutor) contracts.Orchestrator {
	if executor == nil {
		executor = NewParallelExecutor(1)
	}
	return &orchestrator{
		validators: slices.Clone(validators),
		executor:   executor,
	}
}

// Run executes every validator and concatenates their errors in validator
// order.
func (o *orchestrator) Run(ctx context.Context, in *contracts.ValidationInput) (contracts.ValidationResult, error) {
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}, contracts.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return contracts.ValidationResult{}, err
	}

	start := time.Now()
	results, err := o.executor.Execute(ctx, o.validators, in)
	if err != nil {
		return contracts.ValidationResult{}, err
	}

	// Merge in validator order
	merged := contracts.ValidationResult{Errors: []string{}}
	for _, r := range results {
		merged = merged.Merge(r)
	}

	audit.Log("validation finished",
		"validators", len(o.validators),
		"errors", len(merged.Errors),
		"valid", merged.IsValid(),
		"duration", time.Since(start))
	return merged, nil
}
