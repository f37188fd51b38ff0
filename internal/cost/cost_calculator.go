package cost

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// LineItem is the bill of one VM.
type LineItem struct {
	VMID        contracts.VMID    `json:"vm_id"`
	Runtime     contracts.Seconds `json:"runtime"`
	BilledUnits float64           `json:"billed_units"`
	Cost        float64           `json:"cost"`
}

// Breakdown is the bill of a VM fleet.
type Breakdown struct {
	Model contracts.PricingModelKind `json:"model"`
	Items []LineItem                 `json:"items"`
	Total float64                    `json:"total"`
}

// Calculator prices VMs with one pricing model.
type Calculator struct {
	model contracts.PricingModel
}

// NewCalculator creates a calculator for model.
func NewCalculator(model contracts.PricingModel) *Calculator {
	return &Calculator{model: model}
}

// NewCalculatorForParams resolves params through catalog, or through the
// default catalog when catalog is nil.
func NewCalculatorForParams(catalog *Catalog, params contracts.PricingParams) (*Calculator, error) {
	if catalog == nil {
		catalog = NewCatalog()
	}
	model, err := catalog.New(params)
	if err != nil {
		return nil, err
	}
	return NewCalculator(model), nil
}

// VMCost returns what vm costs for its whole runtime.
func (c *Calculator) VMCost(vm contracts.VM) float64 {
	return c.model.Cost(vm.PriceForBillingUnit, vm.Runtime())
}

// Total returns the cost of the whole fleet.
func (c *Calculator) Total(vms []contracts.VM) float64 {
	var total float64
	for _, vm := range vms {
		total += c.VMCost(vm)
	}
	return total
}

// Breakdown returns the per-VM bill in fleet order.
func (c *Calculator) Breakdown(vms []contracts.VM) Breakdown {
	b := Breakdown{Model: c.model.Kind(), Items: make([]LineItem, 0, len(vms))}
	for _, vm := range vms {
		item := LineItem{
			VMID:        vm.ID,
			Runtime:     vm.Runtime(),
			BilledUnits: c.model.BilledUnits(vm.Runtime()),
			Cost:        c.VMCost(vm),
		}
		b.Items = append(b.Items, item)
		b.Total += item.Cost
	}
	return b
}
