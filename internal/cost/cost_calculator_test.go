package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

func TestSimpleModel_BilledUnits(t *testing.T) {
	m := SimpleModel{BillingTime: 3600}

	tests := []struct {
		name    string
		runtime contracts.Seconds
		want    float64
	}{
		{"zero runtime is free", 0, 0},
		{"negative runtime is free", -5, 0},
		{"one second is one unit", 1, 1},
		{"exactly one unit", 3600, 1},
		{"one second over rounds up", 3601, 2},
		{"ten hours", 36000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.BilledUnits(tt.runtime))
		})
	}
}

func TestSimpleModel_Cost(t *testing.T) {
	m := SimpleModel{BillingTime: 3600}

	assert.Equal(t, 20.0, m.Cost(10, 3601))
	assert.Equal(t, 10.0, m.Cost(10, 3600))
	assert.Equal(t, contracts.PricingSimple, m.Kind())
}

func TestGoogleModel_Cost(t *testing.T) {
	m := GoogleModel{BillingTime: 360, FirstBillingTime: 1800}

	tests := []struct {
		name    string
		runtime contracts.Seconds
		want    float64
	}{
		{"zero runtime is free", 0, 0},
		{"inside first period", 10, 500},
		{"exactly first period", 1800, 500},
		{"one second after first period", 1801, 600},
		{"two first periods", 3600, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Cost(100, tt.runtime), 1e-9)
		})
	}
	assert.Equal(t, contracts.PricingGoogle, m.Kind())
}

func TestGoogleModel_MinuteBilling(t *testing.T) {
	m := GoogleModel{BillingTime: 60, FirstBillingTime: 600}
	price := 1.0
	first := price * 600 / 60

	assert.Equal(t, first, m.Cost(price, 120))
	assert.Equal(t, first+price, m.Cost(price, 610))
	assert.Equal(t, first+price, m.Cost(price, 620))
}

func TestCalculator_Breakdown(t *testing.T) {
	calc := NewCalculator(SimpleModel{BillingTime: 3600})
	vms := []contracts.VM{
		{ID: "1", Started: 0, Finished: 3600, Cores: 1, PriceForBillingUnit: 10},
		{ID: "2", Started: 100, Finished: 3701, Cores: 1, PriceForBillingUnit: 5},
	}

	b := calc.Breakdown(vms)

	assert.Equal(t, contracts.PricingSimple, b.Model)
	require.Len(t, b.Items, 2)
	assert.Equal(t, LineItem{VMID: "1", Runtime: 3600, BilledUnits: 1, Cost: 10}, b.Items[0])
	assert.Equal(t, LineItem{VMID: "2", Runtime: 3601, BilledUnits: 2, Cost: 10}, b.Items[1])
	assert.Equal(t, 20.0, b.Total)
	assert.Equal(t, b.Total, calc.Total(vms))
}

func TestCalculator_EmptyFleet(t *testing.T) {
	calc := NewCalculator(SimpleModel{BillingTime: 3600})

	assert.Zero(t, calc.Total(nil))
	assert.Empty(t, calc.Breakdown(nil).Items)
}

func TestNewCalculatorForParams(t *testing.T) {
	calc, err := NewCalculatorForParams(nil, contracts.PricingParams{
		Model:                     contracts.PricingGoogle,
		BillingTimeInSeconds:      360,
		FirstBillingTimeInSeconds: 1800,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, calc.VMCost(contracts.VM{Finished: 3600, PriceForBillingUnit: 100}), 1e-9)
}
