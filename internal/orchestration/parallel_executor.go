package orchestration

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/internal/audit"
)

// ParallelExecutor runs validators with bounded concurrency.
//
// Thread-safety: an executor holds no state between calls and may be shared.
type ParallelExecutor struct {
	maxParallelism int
}

// NewParallelExecutor creates an executor running at most maxParallelism
// validators at once. If maxParallelism <= 0, defaults to 1.
func NewParallelExecutor(maxParallelism int) *ParallelExecutor {
	if maxParallelism <= 0 {
		maxParallelism = 1
	}
	return &ParallelExecutor{maxParallelism: maxParallelism}
}

// MaxParallelism returns the concurrency bound.
func (p *ParallelExecutor) MaxParallelism() int {
	return p.maxParallelism
}

// Execute runs every validator over in and returns their results in the
// order of validators, regardless of completion order. A panicking
// validator contributes one error line and never stops the others.
//
// Returns ctx.Err() if ctx is done before every validator was started.
func (p *ParallelExecutor) Execute(ctx context.Context, validators []contracts.Validator, in *contracts.ValidationInput) ([]contracts.ValidationResult, error) {
	results := make([]contracts.ValidationResult, len(validators))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallelism)
	for i, v := range validators {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			results[i] = runOne(v, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(v contracts.Validator, in *contracts.ValidationInput) (result contracts.ValidationResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = contracts.ValidationResult{
				Errors: []string{fmt.Sprintf("Validator %s crashed: %v", v.Name(), r)},
			}
		}
		audit.ValidatorRun(v.Name(), len(result.Errors), time.Since(start))
	}()
	return v.Validate(in)
}
