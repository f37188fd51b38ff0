// Package cost prices the VM fleet and checks the experiment deadline and
// budget.
package cost

import (
	"math"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// SimpleModel bills every started billing unit.
type SimpleModel struct {
	BillingTime contracts.Seconds
}

func (m SimpleModel) Kind() contracts.PricingModelKind { return contracts.PricingSimple }

// BilledUnits returns ceil(runtime / billing time). Non-positive runtime is free.
func (m SimpleModel) BilledUnits(runtime contracts.Seconds) float64 {
	if runtime <= 0 {
		return 0
	}
	return math.Ceil(runtime / m.BillingTime)
}

func (m SimpleModel) Cost(pricePerUnit float64, runtime contracts.Seconds) float64 {
	return m.BilledUnits(runtime) * pricePerUnit
}

// GoogleModel bills the first period in advance, then every started billing
// unit beyond it.
type GoogleModel struct {
	BillingTime      contracts.Seconds
	FirstBillingTime contracts.Seconds
}

func (m GoogleModel) Kind() contracts.PricingModelKind { return contracts.PricingGoogle }

// BilledUnits returns the first-period units for any positive runtime up to
// and including the first period, plus ceil(rest / billing time) after it.
func (m GoogleModel) BilledUnits(runtime contracts.Seconds) float64 {
	if runtime <= 0 {
		return 0
	}
	first := m.FirstBillingTime / m.BillingTime
	if runtime <= m.FirstBillingTime {
		return first
	}
	return first + math.Ceil((runtime-m.FirstBillingTime)/m.BillingTime)
}

func (m GoogleModel) Cost(pricePerUnit float64, runtime contracts.Seconds) float64 {
	return m.BilledUnits(runtime) * pricePerUnit
}
