package analysis

import (
	"github.com/shopspring/decimal"

	"tyre-cost/core/landed"
	"tyre-cost/internal/errors"
)

// GrowthTargetOMR is the landed price that unlocks volume growth
var GrowthTargetOMR = decimal.RequireFromString("92.5")

// BreakEven is the highest FOB price that still lands at the target
type BreakEven struct {
	TargetOMR decimal.Decimal `json:"target_omr" yaml:"target_omr"`
	FOBUSD    decimal.Decimal `json:"fob_usd" yaml:"fob_usd"`

	// Check is the calculator run at FOBUSD; its total equals TargetOMR
	// up to division rounding
	Check *landed.CostBreakdown `json:"check" yaml:"check"`
}

// BreakEvenFOB inverts the landed-cost formula for a target OMR price.
//
// The total is affine in FOB:
//
//	total = ((fob*(1+ins) + freight) * rate * (1+duty) + clearance) * (1+vat)
//
// so the inverse is closed form. The result is then run back through
// the calculator so the reported figures come from the one formula.
func BreakEvenFOB(calc *landed.Calculator, targetOMR decimal.Decimal, volume float64) (*BreakEven, error) {
	if !targetOMR.IsPositive() {
		return nil, errors.Inputf("target price must be positive, got %s", targetOMR)
	}

	k := calc.Constants()
	one := decimal.NewFromInt(1)
	capacity := decimal.NewFromInt(k.ContainerCapacity)

	freight := k.OceanFreightUSD.Div(capacity)
	clearance := k.ClearanceHaulageOMR.Div(capacity)

	subtotal := targetOMR.Div(one.Add(k.VATRate))
	cifOMR := subtotal.Sub(clearance).Div(one.Add(k.CustomsDutyRate))
	cifUSD := cifOMR.Div(k.USDToOMRRate)
	fob := cifUSD.Sub(freight).Div(one.Add(k.InsuranceRate))

	if !fob.IsPositive() {
		return nil, errors.Inputf("target price %s OMR is below the fixed freight and clearance shares", targetOMR).
			WithContext("target_omr", targetOMR.String())
	}

	check, err := calc.CalculateDecimal(fob, decimal.NewFromFloat(volume))
	if err != nil {
		return nil, err
	}

	return &BreakEven{
		TargetOMR: targetOMR,
		FOBUSD:    fob,
		Check:     check,
	}, nil
}

// BreakEvenTargets solves BreakEvenFOB for several targets
func BreakEvenTargets(calc *landed.Calculator, volume float64, targets ...decimal.Decimal) ([]*BreakEven, error) {
	out := make([]*BreakEven, 0, len(targets))
	for _, t := range targets {
		be, err := BreakEvenFOB(calc, t, volume)
		if err != nil {
			return nil, err
		}
		out = append(out, be)
	}
	return out, nil
}
