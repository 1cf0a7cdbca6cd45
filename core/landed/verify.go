package landed

import (
	"github.com/shopspring/decimal"

	"tyre-cost/internal/errors"
)

// Anchor is a known-good figure the engine must reproduce
type Anchor struct {
	Name      string
	FOBUSD    float64
	Volume    float64
	Field     string
	Want      decimal.Decimal
	Tolerance decimal.Decimal
	get       func(*CostBreakdown) decimal.Decimal
}

// AnchorResult is the outcome of checking one anchor
type AnchorResult struct {
	Anchor Anchor
	Got    decimal.Decimal
	Passed bool
}

var cent = decimal.New(1, -2)

// ReferenceAnchors are the verified Q4 2024 figures for the built-in
// constants
func ReferenceAnchors() []Anchor {
	total := func(b *CostBreakdown) decimal.Decimal { return b.TotalLandedCostOMR }
	return []Anchor{
		{
			Name:      "reference landed cost at $180",
			FOBUSD:    180,
			Volume:    1000,
			Field:     "total_landed_cost_omr",
			Want:      decimal.RequireFromString("82.93"),
			Tolerance: cent,
			get:       total,
		},
		{
			Name:      "Triangle lower bound landed cost",
			FOBUSD:    175,
			Volume:    1000,
			Field:     "total_landed_cost_omr",
			Want:      decimal.RequireFromString("80.78"),
			Tolerance: cent,
			get:       total,
		},
		{
			Name:      "Triangle lower bound savings",
			FOBUSD:    175,
			Volume:    1000,
			Field:     "savings_percentage",
			Want:      decimal.RequireFromString("29.76"),
			Tolerance: cent,
			get:       func(b *CostBreakdown) decimal.Decimal { return b.SavingsPercentage },
		},
	}
}

// Verify checks the anchors plus the structural properties every
// breakdown must have. It returns one result per anchor and an error
// describing the first structural failure.
func (c *Calculator) Verify(anchors []Anchor) ([]AnchorResult, error) {
	results := make([]AnchorResult, 0, len(anchors))
	for _, a := range anchors {
		b, err := c.Calculate(a.FOBUSD, a.Volume)
		if err != nil {
			return nil, err
		}
		if err := checkStructure(b); err != nil {
			return nil, errors.Wrapf(errors.TypeInternal, err, "anchor %q", a.Name)
		}
		got := a.get(b)
		results = append(results, AnchorResult{
			Anchor: a,
			Got:    got,
			Passed: got.Sub(a.Want).Abs().LessThanOrEqual(a.Tolerance),
		})
	}
	return results, nil
}

// checkStructure asserts additivity of the breakdown lines
func checkStructure(b *CostBreakdown) error {
	if !b.CIFUSD.Equal(b.FOBUSD.Add(b.InsuranceUSD).Add(b.OceanFreightUSD)) {
		return errors.Newf(errors.TypeInternal, "cif_usd %s is not fob + insurance + freight", b.CIFUSD)
	}
	if !b.SubtotalOMR.Equal(b.CIFOMR.Add(b.CustomsDutyOMR).Add(b.ClearanceOMR)) {
		return errors.Newf(errors.TypeInternal, "subtotal_omr %s is not cif + duty + clearance", b.SubtotalOMR)
	}
	if !b.TotalLandedCostOMR.Equal(b.SubtotalOMR.Add(b.VATOMR)) {
		return errors.Newf(errors.TypeInternal, "total_landed_cost_omr %s is not subtotal + vat", b.TotalLandedCostOMR)
	}
	sum := decimal.Zero
	for _, comp := range b.Components() {
		sum = sum.Add(comp.Amount)
	}
	if !sum.Equal(b.TotalLandedCostOMR) {
		return errors.Newf(errors.TypeInternal, "components sum to %s, total is %s", sum, b.TotalLandedCostOMR)
	}
	return nil
}
