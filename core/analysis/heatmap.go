package analysis

import (
	"github.com/shopspring/decimal"

	"tyre-cost/core/landed"
	"tyre-cost/internal/errors"
)

// Band buckets an annual saving for heatmap coloring
type Band string

const (
	BandLoss      Band = "loss"
	BandMarginal  Band = "marginal"
	BandGood      Band = "good"
	BandExcellent Band = "excellent"
)

var (
	marginalCeiling = decimal.NewFromInt(20000)
	goodCeiling     = decimal.NewFromInt(40000)
)

// BandFor classifies an annual saving in OMR
func BandFor(annualSavingsOMR decimal.Decimal) Band {
	switch {
	case annualSavingsOMR.IsNegative():
		return BandLoss
	case annualSavingsOMR.LessThan(marginalCeiling):
		return BandMarginal
	case annualSavingsOMR.LessThan(goodCeiling):
		return BandGood
	default:
		return BandExcellent
	}
}

// DefaultHeatmapVolumes are the heatmap rows
var DefaultHeatmapVolumes = []float64{300, 500, 750, 1000, 1250, 1500}

// DefaultHeatmapPrices are the heatmap columns, spanning the catalog bands
var DefaultHeatmapPrices = []float64{145, 155, 165, 175, 185, 195, 205}

// HeatmapCell is one volume/price combination
type HeatmapCell struct {
	Volume           float64         `json:"volume" yaml:"volume"`
	FOBUSD           float64         `json:"fob_usd" yaml:"fob_usd"`
	LandedCostOMR    decimal.Decimal `json:"landed_cost_omr" yaml:"landed_cost_omr"`
	AnnualSavingsOMR decimal.Decimal `json:"annual_savings_omr" yaml:"annual_savings_omr"`
	Profitable       bool            `json:"profitable" yaml:"profitable"`
	Band             Band            `json:"band" yaml:"band"`
}

// Heatmap is a grid of annual savings against a target price.
// Cells[i][j] is Volumes[i] at Prices[j].
type Heatmap struct {
	TargetOMR decimal.Decimal `json:"target_omr" yaml:"target_omr"`
	Volumes   []float64       `json:"volumes" yaml:"volumes"`
	Prices    []float64       `json:"prices" yaml:"prices"`
	Cells     [][]HeatmapCell `json:"cells" yaml:"cells"`
}

// BuildHeatmap evaluates annual savings against targetOMR for every cell.
// With the incumbent price as target the savings match the calculator's own.
func BuildHeatmap(calc *landed.Calculator, targetOMR decimal.Decimal, volumes, prices []float64) (*Heatmap, error) {
	if len(volumes) == 0 || len(prices) == 0 {
		return nil, errors.Input("heatmap needs at least one volume and one price")
	}
	if !targetOMR.IsPositive() {
		return nil, errors.Inputf("target price must be positive, got %s", targetOMR)
	}

	h := &Heatmap{
		TargetOMR: targetOMR,
		Volumes:   append([]float64(nil), volumes...),
		Prices:    append([]float64(nil), prices...),
		Cells:     make([][]HeatmapCell, len(volumes)),
	}

	for i, volume := range volumes {
		h.Cells[i] = make([]HeatmapCell, len(prices))
		for j, price := range prices {
			b, err := calc.Calculate(price, volume)
			if err != nil {
				return nil, err
			}
			annual := targetOMR.Sub(b.TotalLandedCostOMR).Mul(b.Volume)
			h.Cells[i][j] = HeatmapCell{
				Volume:           volume,
				FOBUSD:           price,
				LandedCostOMR:    b.TotalLandedCostOMR,
				AnnualSavingsOMR: annual,
				Profitable:       annual.IsPositive(),
				Band:             BandFor(annual),
			}
		}
	}
	return h, nil
}
