// Package reference holds the static data the landed-cost engine reads:
// economic constants and the supplier catalog.
// Values are built once at startup and never mutated afterwards.
package reference

import (
	"github.com/shopspring/decimal"

	"tyre-cost/internal/errors"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyOMR Currency = "OMR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// EconomicConstants are the tax, freight and exchange figures every
// calculation is closed over.
type EconomicConstants struct {
	// USDToOMRRate converts USD to OMR by multiplication
	USDToOMRRate decimal.Decimal `json:"usd_to_omr_rate" yaml:"usd_to_omr_rate"`

	// CurrentPriceOMR is the incumbent distributor's per-unit price
	CurrentPriceOMR decimal.Decimal `json:"current_price_omr" yaml:"current_price_omr"`

	// OceanFreightUSD is the freight cost of one full container
	OceanFreightUSD decimal.Decimal `json:"ocean_freight_usd" yaml:"ocean_freight_usd"`

	// ContainerCapacity is units per container under normal loading (no doubling)
	ContainerCapacity int64 `json:"container_capacity" yaml:"container_capacity"`

	// ClearanceHaulageOMR is the clearance and haulage fee for one container
	ClearanceHaulageOMR decimal.Decimal `json:"clearance_haulage_omr" yaml:"clearance_haulage_omr"`

	// CustomsDutyRate applies to the CIF value
	CustomsDutyRate decimal.Decimal `json:"customs_duty_rate" yaml:"customs_duty_rate"`

	// VATRate applies to CIF + duty + clearance
	VATRate decimal.Decimal `json:"vat_rate" yaml:"vat_rate"`

	// InsuranceRate applies to the FOB price
	InsuranceRate decimal.Decimal `json:"insurance_rate" yaml:"insurance_rate"`
}

// DefaultConstants returns the verified Q4 2024 figures.
func DefaultConstants() EconomicConstants {
	return EconomicConstants{
		USDToOMRRate:        decimal.RequireFromString("0.385"),
		CurrentPriceOMR:     decimal.NewFromInt(115),
		OceanFreightUSD:     decimal.NewFromInt(2500),
		ContainerCapacity:   230,
		ClearanceHaulageOMR: decimal.NewFromInt(250),
		CustomsDutyRate:     decimal.RequireFromString("0.05"),
		VATRate:             decimal.RequireFromString("0.05"),
		InsuranceRate:       decimal.RequireFromString("0.01"),
	}
}

// OMRToUSDRate is the reciprocal of USDToOMRRate.
func (c EconomicConstants) OMRToUSDRate() decimal.Decimal {
	return decimal.NewFromInt(1).Div(c.USDToOMRRate)
}

// Validate reports the first constant that would make the formula
// meaningless. A failure here is a configuration defect.
func (c EconomicConstants) Validate() error {
	if c.ContainerCapacity <= 0 {
		return errors.Configf("container_capacity must be positive, got %d", c.ContainerCapacity).
			WithContext("field", "container_capacity")
	}
	if !c.USDToOMRRate.IsPositive() {
		return errors.Configf("usd_to_omr_rate must be positive, got %s", c.USDToOMRRate).
			WithContext("field", "usd_to_omr_rate")
	}

	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"current_price_omr", c.CurrentPriceOMR},
		{"ocean_freight_usd", c.OceanFreightUSD},
		{"clearance_haulage_omr", c.ClearanceHaulageOMR},
		{"customs_duty_rate", c.CustomsDutyRate},
		{"vat_rate", c.VATRate},
		{"insurance_rate", c.InsuranceRate},
	}
	for _, nn := range nonNegative {
		if nn.value.IsNegative() {
			return errors.Configf("%s must not be negative, got %s", nn.field, nn.value).
				WithContext("field", nn.field)
		}
	}
	return nil
}

// ToOMR converts a USD amount to OMR.
func (c EconomicConstants) ToOMR(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(c.USDToOMRRate)
}

// ToUSD converts an OMR amount to USD.
func (c EconomicConstants) ToUSD(omr decimal.Decimal) decimal.Decimal {
	return omr.Mul(c.OMRToUSDRate())
}
