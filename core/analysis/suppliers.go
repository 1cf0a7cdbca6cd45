package analysis

import (
	"tyre-cost/core/landed"
	"tyre-cost/core/reference"
	"tyre-cost/internal/errors"
)

// SupplierQuote is a supplier's landed cost at the bottom, middle and
// top of its FOB band
type SupplierQuote struct {
	Supplier reference.SupplierInfo `json:"supplier" yaml:"supplier"`
	Low      *landed.CostBreakdown  `json:"low" yaml:"low"`
	Default  *landed.CostBreakdown  `json:"default" yaml:"default"`
	High     *landed.CostBreakdown  `json:"high" yaml:"high"`
}

// SupplierComparison ranks the catalog at one volume
type SupplierComparison struct {
	Volume      float64         `json:"volume" yaml:"volume"`
	Quotes      []SupplierQuote `json:"quotes" yaml:"quotes"`
	Recommended string          `json:"recommended,omitempty" yaml:"recommended,omitempty"`
}

// QuoteSupplier prices one supplier across its band
func QuoteSupplier(calc *landed.Calculator, s reference.SupplierInfo, volume float64) (*SupplierQuote, error) {
	low, err := calc.Calculate(s.FOBMin, volume)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "supplier %s", s.ID)
	}
	mid, err := calc.Calculate(reference.DefaultFOB(s), volume)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "supplier %s", s.ID)
	}
	high, err := calc.Calculate(s.FOBMax, volume)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "supplier %s", s.ID)
	}
	return &SupplierQuote{Supplier: s, Low: low, Default: mid, High: high}, nil
}

// CompareSuppliers quotes every supplier in catalog order and picks the
// cheapest one at its default FOB whose risk is not high.
// Ties keep catalog order.
func CompareSuppliers(calc *landed.Calculator, catalog *reference.Catalog, volume float64) (*SupplierComparison, error) {
	out := &SupplierComparison{Volume: volume}

	var best *SupplierQuote
	for _, s := range catalog.All() {
		q, err := QuoteSupplier(calc, s, volume)
		if err != nil {
			return nil, err
		}
		out.Quotes = append(out.Quotes, *q)
		if s.IsHighRisk() {
			continue
		}
		if best == nil || q.Default.TotalLandedCostOMR.LessThan(best.Default.TotalLandedCostOMR) {
			best = q
		}
	}
	if best != nil {
		out.Recommended = best.Supplier.ID
	}
	return out, nil
}
