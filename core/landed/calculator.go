// Package landed is the landed-cost engine.
// Every surface that shows a cost (tables, charts, exports, analysis)
// goes through Calculator so that there is exactly one formula.
package landed

import (
	"math"

	"github.com/shopspring/decimal"

	"tyre-cost/core/reference"
	"tyre-cost/internal/errors"
)

// Calculator computes landed costs against one immutable set of constants.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	constants reference.EconomicConstants

	// derived once; both depend only on constants
	freightPerUnitUSD   decimal.Decimal
	clearancePerUnitOMR decimal.Decimal
	omrToUSD            decimal.Decimal
}

// New validates the constants and returns a calculator closed over them
func New(constants reference.EconomicConstants) (*Calculator, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	capacity := decimal.NewFromInt(constants.ContainerCapacity)
	return &Calculator{
		constants:           constants,
		freightPerUnitUSD:   constants.OceanFreightUSD.Div(capacity),
		clearancePerUnitOMR: constants.ClearanceHaulageOMR.Div(capacity),
		omrToUSD:            constants.OMRToUSDRate(),
	}, nil
}

// MustNew is New for constants known to be valid
func MustNew(constants reference.EconomicConstants) *Calculator {
	c, err := New(constants)
	if err != nil {
		panic(err)
	}
	return c
}

// Constants returns the constants this calculator is closed over
func (c *Calculator) Constants() reference.EconomicConstants {
	return c.constants
}

// ValidateInputs checks calculator preconditions without computing anything
func ValidateInputs(fobUSD, volume float64) error {
	if math.IsNaN(fobUSD) || math.IsInf(fobUSD, 0) {
		return errors.Inputf("fob price must be a finite number, got %v", fobUSD).WithContext("fob_usd", fobUSD)
	}
	if fobUSD <= 0 {
		return errors.Inputf("fob price must be positive, got %v", fobUSD).WithContext("fob_usd", fobUSD)
	}
	if math.IsNaN(volume) || math.IsInf(volume, 0) {
		return errors.Inputf("volume must be a finite number, got %v", volume).WithContext("volume", volume)
	}
	if volume <= 0 {
		return errors.Inputf("volume must be positive, got %v", volume).WithContext("volume", volume)
	}
	return nil
}

// Calculate returns the itemized landed cost for one unit bought at
// fobUSD, with annual figures scaled by volume.
//
// Steps run in a fixed order because later lines consume earlier ones:
// insurance, freight share, CIF, conversion to OMR, duty on CIF,
// clearance share, subtotal, VAT on the subtotal, total, savings.
// No range checks beyond positivity are applied; keeping a price
// inside a supplier's band is the caller's job.
func (c *Calculator) Calculate(fobUSD, volume float64) (*CostBreakdown, error) {
	if err := ValidateInputs(fobUSD, volume); err != nil {
		return nil, err
	}
	return c.calculate(decimal.NewFromFloat(fobUSD), decimal.NewFromFloat(volume)), nil
}

// CalculateDecimal is Calculate for callers that already hold decimals
func (c *Calculator) CalculateDecimal(fobUSD, volume decimal.Decimal) (*CostBreakdown, error) {
	if !fobUSD.IsPositive() {
		return nil, errors.Inputf("fob price must be positive, got %s", fobUSD).WithContext("fob_usd", fobUSD.String())
	}
	if !volume.IsPositive() {
		return nil, errors.Inputf("volume must be positive, got %s", volume).WithContext("volume", volume.String())
	}
	return c.calculate(fobUSD, volume), nil
}

func (c *Calculator) calculate(fob, volume decimal.Decimal) *CostBreakdown {
	k := c.constants
	rate := k.USDToOMRRate

	insuranceUSD := fob.Mul(k.InsuranceRate)
	freightUSD := c.freightPerUnitUSD
	cifUSD := fob.Add(insuranceUSD).Add(freightUSD)

	fobOMR := fob.Mul(rate)
	insuranceOMR := insuranceUSD.Mul(rate)
	freightOMR := freightUSD.Mul(rate)
	cifOMR := cifUSD.Mul(rate)

	dutyOMR := cifOMR.Mul(k.CustomsDutyRate)
	clearanceOMR := c.clearancePerUnitOMR

	subtotalOMR := cifOMR.Add(dutyOMR).Add(clearanceOMR)
	vatOMR := subtotalOMR.Mul(k.VATRate)

	totalOMR := subtotalOMR.Add(vatOMR)
	totalUSD := totalOMR.Mul(c.omrToUSD)

	savingsOMR := k.CurrentPriceOMR.Sub(totalOMR)
	savingsPct := decimal.Zero
	if !k.CurrentPriceOMR.IsZero() {
		savingsPct = savingsOMR.Div(k.CurrentPriceOMR).Mul(decimal.NewFromInt(100))
	}
	annualOMR := savingsOMR.Mul(volume)
	annualUSD := annualOMR.Mul(c.omrToUSD)

	containers := volume.Div(decimal.NewFromInt(k.ContainerCapacity)).Ceil().IntPart()

	return &CostBreakdown{
		FOBUSD:                fob,
		Volume:                volume,
		InsuranceUSD:          insuranceUSD,
		OceanFreightUSD:       freightUSD,
		CIFUSD:                cifUSD,
		FOBOMR:                fobOMR,
		InsuranceOMR:          insuranceOMR,
		OceanFreightOMR:       freightOMR,
		CIFOMR:                cifOMR,
		CustomsDutyOMR:        dutyOMR,
		ClearanceOMR:          clearanceOMR,
		SubtotalOMR:           subtotalOMR,
		VATOMR:                vatOMR,
		TotalLandedCostOMR:    totalOMR,
		TotalLandedCostUSD:    totalUSD,
		SavingsPerUnitOMR:     savingsOMR,
		SavingsPercentage:     savingsPct,
		AnnualSavingsOMR:      annualOMR,
		AnnualSavingsUSD:      annualUSD,
		ContainersNeeded:      containers,
		TotalContainerCostOMR: totalOMR.Mul(volume),
	}
}

var defaultCalculator = MustNew(reference.DefaultConstants())

// Default returns the calculator built from the compiled-in constants
func Default() *Calculator {
	return defaultCalculator
}

// CalculateLandedCost runs Calculate with the default constants
func CalculateLandedCost(fobUSD, volume float64) (*CostBreakdown, error) {
	return defaultCalculator.Calculate(fobUSD, volume)
}
