package orchestration

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// fakeValidator returns fixed errors after an optional delay.
type fakeValidator struct {
	name  string
	errs  []string
	delay time.Duration
	panic bool

	running *atomic.Int32
	peak    *atomic.Int32
}

func (f *fakeValidator) Name() string { return f.name }

func (f *fakeValidator) Validate(*contracts.ValidationInput) contracts.ValidationResult {
	if f.running != nil {
		n := f.running.Add(1)
		defer f.running.Add(-1)
		for {
			old := f.peak.Load()
			if n <= old || f.peak.CompareAndSwap(old, n) {
				break
			}
		}
	}
	time.Sleep(f.delay)
	if f.panic {
		panic("boom")
	}
	return contracts.ValidationResult{Errors: f.errs}
}

func emptyInput() *contracts.ValidationInput {
	return &contracts.ValidationInput{Log: contracts.NewLogBuilder(contracts.Settings{}).Build()}
}

func TestNewParallelExecutor_Defaults(t *testing.T) {
	assert.Equal(t, 1, NewParallelExecutor(0).MaxParallelism())
	assert.Equal(t, 1, NewParallelExecutor(-3).MaxParallelism())
	assert.Equal(t, 4, NewParallelExecutor(4).MaxParallelism())
}

func TestParallelExecutor_ResultsKeepValidatorOrder(t *testing.T) {
	validators := []contracts.Validator{
		&fakeValidator{name: "slow", errs: []string{"a"}, delay: 30 * time.Millisecond},
		&fakeValidator{name: "fast", errs: []string{"b"}},
		&fakeValidator{name: "medium", errs: []string{"c"}, delay: 10 * time.Millisecond},
	}

	results, err := NewParallelExecutor(3).Execute(context.Background(), validators, emptyInput())

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"a"}, results[0].Errors)
	assert.Equal(t, []string{"b"}, results[1].Errors)
	assert.Equal(t, []string{"c"}, results[2].Errors)
}

func TestParallelExecutor_RespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	var validators []contracts.Validator
	for i := 0; i < 8; i++ {
		validators = append(validators, &fakeValidator{
			name: "v", delay: 5 * time.Millisecond, running: &running, peak: &peak,
		})
	}

	_, err := NewParallelExecutor(2).Execute(context.Background(), validators, emptyInput())

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestParallelExecutor_PanicIsIsolated(t *testing.T) {
	validators := []contracts.Validator{
		&fakeValidator{name: "broken", panic: true},
		&fakeValidator{name: "fine", errs: []string{"x"}},
	}

	results, err := NewParallelExecutor(2).Execute(context.Background(), validators, emptyInput())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"Validator broken crashed: boom"}, results[0].Errors)
	assert.Equal(t, []string{"x"}, results[1].Errors)
}

func TestParallelExecutor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParallelExecutor(1).Execute(ctx, []contracts.Validator{&fakeValidator{name: "v"}}, emptyInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallelExecutor_NoValidators(t *testing.T) {
	results, err := NewParallelExecutor(1).Execute(context.Background(), nil, emptyInput())
	require.NoError(t, err)
	assert.Empty(t, results)
}
