package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

const (
	defaultDeadline = 10000.0
	defaultBudget   = 300.0
	secsInHour      = 3600.0
)

func hourlyVM(id contracts.VMID, started, finished contracts.Seconds, price float64) contracts.VM {
	return contracts.VM{ID: id, Started: started, Finished: finished, Cores: 1, PriceForBillingUnit: price}
}

func validate(settings contracts.Settings, vms ...contracts.VM) contracts.ValidationResult {
	b := contracts.NewLogBuilder(settings)
	for _, vm := range vms {
		b.AddVM(vm)
	}
	return NewValidator().Validate(&contracts.ValidationInput{Log: b.Build()})
}

func hourly(deadline contracts.Seconds, budget float64) contracts.Settings {
	return contracts.Settings{
		Deadline: deadline,
		Budget:   budget,
		Pricing:  contracts.PricingParams{Model: contracts.PricingSimple, BillingTimeInSeconds: secsInHour},
	}
}

func TestValidator_Name(t *testing.T) {
	assert.Equal(t, "cost", NewValidator().Name())
}

func TestValidator_Deadline(t *testing.T) {
	tests := []struct {
		name    string
		vms     []contracts.VM
		wantErr bool
	}{
		{
			name:    "terminated within deadline",
			vms:     []contracts.VM{hourlyVM("1", 0, 13, 10), hourlyVM("2", 14, 19, 10)},
			wantErr: false,
		},
		{
			name:    "terminated exactly at deadline",
			vms:     []contracts.VM{hourlyVM("1", 0, 13, 10), hourlyVM("2", 14, 20, 10)},
			wantErr: false,
		},
		{
			name:    "terminated after deadline",
			vms:     []contracts.VM{hourlyVM("1", 14, 22, 10)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validate(hourly(20, defaultBudget), tt.vms...)
			assert.Equal(t, tt.wantErr, !result.IsValid(), result.Errors)
		})
	}
}

func TestValidator_DeadlineMessage(t *testing.T) {
	result := validate(hourly(20, defaultBudget), hourlyVM("1", 14, 22, 10))

	assert.Equal(t, []string{"VM 1 lifecycle (14 - 22) exceeded constrained deadline (20)."}, result.Errors)
}

func TestValidator_Budget(t *testing.T) {
	tests := []struct {
		name    string
		budget  float64
		vms     []contracts.VM
		wantErr bool
	}{
		{"within budget", 1234, []contracts.VM{hourlyVM("1", 0, secsInHour, 1000)}, false},
		{"equal to budget", 1000, []contracts.VM{hourlyVM("1", 0, secsInHour, 1000)}, false},
		{"exceeds budget", 333, []contracts.VM{hourlyVM("1", 0, secsInHour, 1000)}, true},
		{"started hours are billed in full", 1000, []contracts.VM{hourlyVM("1", 0, secsInHour+1, 1000)}, true},
		{
			"hours are summed over VMs",
			2999,
			[]contracts.VM{
				hourlyVM("1", 0, secsInHour, 1000),
				hourlyVM("2", 0, secsInHour, 1000),
				hourlyVM("3", 0, secsInHour, 1000),
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validate(hourly(defaultDeadline, tt.budget), tt.vms...)
			assert.Equal(t, tt.wantErr, !result.IsValid(), result.Errors)
		})
	}
}

func TestValidator_BudgetMessage(t *testing.T) {
	result := validate(hourly(defaultDeadline, 10), hourlyVM("1", 0, 3601, 10))

	assert.Equal(t, []string{"Total VMs cost (20) exceeded budget (10)"}, result.Errors)
}

func TestValidator_DeadlineErrorsPrecedeBudget(t *testing.T) {
	result := validate(hourly(100, 1),
		hourlyVM("1", 0, 200, 10),
		hourlyVM("2", 0, 300, 10))

	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "VM 1")
	assert.Contains(t, result.Errors[1], "VM 2")
	assert.Contains(t, result.Errors[2], "exceeded budget")
}

func TestValidator_GooglePricing(t *testing.T) {
	settings := contracts.Settings{
		Deadline: defaultDeadline,
		Budget:   999,
		Pricing: contracts.PricingParams{
			Model:                     contracts.PricingGoogle,
			BillingTimeInSeconds:      360,
			FirstBillingTimeInSeconds: 1800,
		},
	}

	result := validate(settings, hourlyVM("1", 0, 3600, 100))
	assert.Equal(t, []string{"Total VMs cost (1000) exceeded budget (999)"}, result.Errors)
}

func TestValidator_UnknownPricingModel(t *testing.T) {
	settings := hourly(defaultDeadline, defaultBudget)
	settings.Pricing.Model = "spot"

	result := validate(settings, hourlyVM("1", 0, 10, 1))
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unknown pricing model")
}

func TestValidator_NilInput(t *testing.T) {
	assert.True(t, NewValidator().Validate(nil).IsValid())
}
