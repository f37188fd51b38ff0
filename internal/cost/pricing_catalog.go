package cost

import (
	"slices"
	"sync"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// DefaultBillingTime is the billing unit used when none is configured.
const DefaultBillingTime contracts.Seconds = 3600

// Factory builds a pricing model from validated parameters.
type Factory func(params contracts.PricingParams) (contracts.PricingModel, error)

// DefaultFactories are the pricing models known out of the box.
var DefaultFactories = map[contracts.PricingModelKind]Factory{
	contracts.PricingSimple: func(p contracts.PricingParams) (contracts.PricingModel, error) {
		return SimpleModel{BillingTime: p.BillingTimeInSeconds}, nil
	},
	contracts.PricingGoogle: func(p contracts.PricingParams) (contracts.PricingModel, error) {
		if p.FirstBillingTimeInSeconds <= 0 {
			return nil, errors.Wrapf(contracts.ErrInvalidInput, "google pricing needs a positive first billing time, got %v",
				p.FirstBillingTimeInSeconds)
		}
		return GoogleModel{BillingTime: p.BillingTimeInSeconds, FirstBillingTime: p.FirstBillingTimeInSeconds}, nil
	},
}

// Catalog resolves pricing parameters to a pricing model.
//
// Thread-safety: safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	factories map[contracts.PricingModelKind]Factory
}

// NewCatalog creates a catalog with the default pricing models.
func NewCatalog() *Catalog {
	return NewCatalogWithFactories(DefaultFactories)
}

// NewCatalogWithFactories creates a catalog with custom pricing models.
func NewCatalogWithFactories(factories map[contracts.PricingModelKind]Factory) *Catalog {
	c := &Catalog{factories: make(map[contracts.PricingModelKind]Factory, len(factories))}
	for kind, f := range factories {
		c.factories[kind] = f
	}
	return c
}

// Register adds or replaces the factory for kind.
func (c *Catalog) Register(kind contracts.PricingModelKind, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[kind] = f
}

// Kinds lists the registered pricing models in name order.
func (c *Catalog) Kinds() []contracts.PricingModelKind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]contracts.PricingModelKind, 0, len(c.factories))
	for k := range c.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// New builds the pricing model described by params. An empty model means
// simple pricing; a zero billing time means DefaultBillingTime.
func (c *Catalog) New(params contracts.PricingParams) (contracts.PricingModel, error) {
	if params.Model == "" {
		params.Model = contracts.PricingSimple
	}
	if params.BillingTimeInSeconds == 0 {
		params.BillingTimeInSeconds = DefaultBillingTime
	}
	if params.BillingTimeInSeconds < 0 {
		return nil, errors.Wrapf(contracts.ErrInvalidInput, "billing time %v must be positive", params.BillingTimeInSeconds)
	}

	c.mu.RLock()
	f, ok := c.factories[params.Model]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(contracts.ErrUnknownPricingModel, "pricing model %q", params.Model)
	}
	return f(params)
}
