// Package analysis builds the comparison views of the dashboard:
// scenario tables, multi-year projections, break-even prices,
// profitability heatmaps and supplier comparisons.
// Nothing here computes a cost itself; every figure comes from landed.Calculator.
package analysis

import (
	"github.com/shopspring/decimal"

	"tyre-cost/core/landed"
	"tyre-cost/internal/errors"
)

// PriceTier is a named FOB price used across scenario volumes
type PriceTier struct {
	Name   string  `json:"name" yaml:"name"`
	FOBUSD float64 `json:"fob_usd" yaml:"fob_usd"`
}

// DefaultScenarioVolumes are the annual volumes compared by default
var DefaultScenarioVolumes = []float64{500, 750, 1000, 1200, 1500}

// DefaultPriceTiers are the budget, target and premium FOB prices
func DefaultPriceTiers() []PriceTier {
	return []PriceTier{
		{Name: "budget", FOBUSD: 175},
		{Name: "target", FOBUSD: 180},
		{Name: "premium", FOBUSD: 195},
	}
}

// TierResult is one price tier evaluated at one volume
type TierResult struct {
	Tier             string          `json:"tier" yaml:"tier"`
	FOBUSD           float64         `json:"fob_usd" yaml:"fob_usd"`
	LandedCostOMR    decimal.Decimal `json:"landed_cost_omr" yaml:"landed_cost_omr"`
	AnnualCostOMR    decimal.Decimal `json:"annual_cost_omr" yaml:"annual_cost_omr"`
	AnnualSavingsOMR decimal.Decimal `json:"annual_savings_omr" yaml:"annual_savings_omr"`
}

// ScenarioRow compares the incumbent against every tier at one volume
type ScenarioRow struct {
	Volume             float64         `json:"volume" yaml:"volume"`
	IncumbentAnnualOMR decimal.Decimal `json:"incumbent_annual_omr" yaml:"incumbent_annual_omr"`
	Tiers              []TierResult    `json:"tiers" yaml:"tiers"`
}

// Scenarios is a volume x price-tier comparison table
type Scenarios struct {
	Tiers []PriceTier   `json:"tiers" yaml:"tiers"`
	Rows  []ScenarioRow `json:"rows" yaml:"rows"`
}

// CompareScenarios evaluates every tier at every volume
func CompareScenarios(calc *landed.Calculator, volumes []float64, tiers []PriceTier) (*Scenarios, error) {
	if len(volumes) == 0 {
		return nil, errors.Input("at least one volume is required")
	}
	if len(tiers) == 0 {
		return nil, errors.Input("at least one price tier is required")
	}

	incumbent := calc.Constants().CurrentPriceOMR
	out := &Scenarios{
		Tiers: append([]PriceTier(nil), tiers...),
		Rows:  make([]ScenarioRow, 0, len(volumes)),
	}

	for _, volume := range volumes {
		row := ScenarioRow{
			Volume: volume,
			Tiers:  make([]TierResult, 0, len(tiers)),
		}
		for _, tier := range tiers {
			b, err := calc.Calculate(tier.FOBUSD, volume)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeInput, err, "scenario %s at volume %v", tier.Name, volume)
			}
			row.IncumbentAnnualOMR = incumbent.Mul(b.Volume)
			row.Tiers = append(row.Tiers, TierResult{
				Tier:             tier.Name,
				FOBUSD:           tier.FOBUSD,
				LandedCostOMR:    b.TotalLandedCostOMR,
				AnnualCostOMR:    b.TotalContainerCostOMR,
				AnnualSavingsOMR: b.AnnualSavingsOMR,
			})
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// ProjectionYear is the cumulative saving after a number of years
type ProjectionYear struct {
	Year                 int             `json:"year" yaml:"year"`
	CumulativeSavingsOMR decimal.Decimal `json:"cumulative_savings_omr" yaml:"cumulative_savings_omr"`
	CumulativeSavingsUSD decimal.Decimal `json:"cumulative_savings_usd" yaml:"cumulative_savings_usd"`
}

// Projection accumulates annual savings over a horizon
type Projection struct {
	FOBUSD float64               `json:"fob_usd" yaml:"fob_usd"`
	Volume float64               `json:"volume" yaml:"volume"`
	Annual *landed.CostBreakdown `json:"annual" yaml:"annual"`
	Years  []ProjectionYear      `json:"years" yaml:"years"`
}

// Project computes cumulative savings for years 1..years at a fixed
// FOB price and volume. Savings are flat per year; no growth or
// discounting is modeled.
func Project(calc *landed.Calculator, fobUSD, volume float64, years int) (*Projection, error) {
	if years <= 0 {
		return nil, errors.Inputf("years must be positive, got %d", years)
	}
	b, err := calc.Calculate(fobUSD, volume)
	if err != nil {
		return nil, err
	}

	p := &Projection{
		FOBUSD: fobUSD,
		Volume: volume,
		Annual: b,
		Years:  make([]ProjectionYear, 0, years),
	}
	for y := 1; y <= years; y++ {
		n := decimal.NewFromInt(int64(y))
		p.Years = append(p.Years, ProjectionYear{
			Year:                 y,
			CumulativeSavingsOMR: b.AnnualSavingsOMR.Mul(n),
			CumulativeSavingsUSD: b.AnnualSavingsUSD.Mul(n),
		})
	}
	return p, nil
}
