package landed

import (
	"github.com/shopspring/decimal"
)

// CostBreakdown is the itemized landed cost of one unit at a given FOB
// price and annual volume. It is a value: produced fresh by every
// Calculate call and never modified afterwards.
type CostBreakdown struct {
	// Inputs
	FOBUSD decimal.Decimal `json:"fob_usd" yaml:"fob_usd"`
	Volume decimal.Decimal `json:"volume" yaml:"volume"`

	// Per-unit USD components
	InsuranceUSD    decimal.Decimal `json:"insurance_usd" yaml:"insurance_usd"`
	OceanFreightUSD decimal.Decimal `json:"ocean_freight_usd" yaml:"ocean_freight_usd"`
	CIFUSD          decimal.Decimal `json:"cif_usd" yaml:"cif_usd"`

	// Per-unit OMR components
	FOBOMR             decimal.Decimal `json:"fob_omr" yaml:"fob_omr"`
	InsuranceOMR       decimal.Decimal `json:"insurance_omr" yaml:"insurance_omr"`
	OceanFreightOMR    decimal.Decimal `json:"ocean_freight_omr" yaml:"ocean_freight_omr"`
	CIFOMR             decimal.Decimal `json:"cif_omr" yaml:"cif_omr"`
	CustomsDutyOMR     decimal.Decimal `json:"customs_duty_omr" yaml:"customs_duty_omr"`
	ClearanceOMR       decimal.Decimal `json:"clearance_omr" yaml:"clearance_omr"`
	SubtotalOMR        decimal.Decimal `json:"subtotal_omr" yaml:"subtotal_omr"`
	VATOMR             decimal.Decimal `json:"vat_omr" yaml:"vat_omr"`
	TotalLandedCostOMR decimal.Decimal `json:"total_landed_cost_omr" yaml:"total_landed_cost_omr"`

	TotalLandedCostUSD decimal.Decimal `json:"total_landed_cost_usd" yaml:"total_landed_cost_usd"`

	// Savings against the incumbent price
	SavingsPerUnitOMR decimal.Decimal `json:"savings_per_unit_omr" yaml:"savings_per_unit_omr"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage" yaml:"savings_percentage"`
	AnnualSavingsOMR  decimal.Decimal `json:"annual_savings_omr" yaml:"annual_savings_omr"`
	AnnualSavingsUSD  decimal.Decimal `json:"annual_savings_usd" yaml:"annual_savings_usd"`

	// Container analysis
	ContainersNeeded      int64           `json:"containers_needed" yaml:"containers_needed"`
	TotalContainerCostOMR decimal.Decimal `json:"total_container_cost_omr" yaml:"total_container_cost_omr"`
}

// IsProfitable reports whether importing beats the incumbent price
func (b *CostBreakdown) IsProfitable() bool {
	return b.SavingsPerUnitOMR.IsPositive()
}

// MeetsTarget reports whether the landed cost is at or below target (OMR)
func (b *CostBreakdown) MeetsTarget(targetOMR decimal.Decimal) bool {
	return b.TotalLandedCostOMR.LessThanOrEqual(targetOMR)
}

// Component is one slice of the landed cost, in OMR per unit
type Component struct {
	ID      string          `json:"id" yaml:"id"`
	Label   string          `json:"label" yaml:"label"`
	Amount  decimal.Decimal `json:"amount_omr" yaml:"amount_omr"`
	Formula string          `json:"formula" yaml:"formula"`
}

// Share returns the component's fraction of total, in percent
func (c Component) Share(total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return c.Amount.Div(total).Mul(decimal.NewFromInt(100))
}

// Components itemizes the landed cost for pie charts and tables.
// The amounts sum exactly to TotalLandedCostOMR.
func (b *CostBreakdown) Components() []Component {
	return []Component{
		{ID: "fob", Label: "Factory Price", Amount: b.FOBOMR, Formula: "fob_usd * usd_to_omr_rate"},
		{ID: "insurance", Label: "Insurance", Amount: b.InsuranceOMR, Formula: "fob_usd * insurance_rate * usd_to_omr_rate"},
		{ID: "freight", Label: "Ocean Freight", Amount: b.OceanFreightOMR, Formula: "ocean_freight_usd / container_capacity * usd_to_omr_rate"},
		{ID: "duty", Label: "Customs Duty", Amount: b.CustomsDutyOMR, Formula: "cif_omr * customs_duty_rate"},
		{ID: "clearance", Label: "Clearance & Haulage", Amount: b.ClearanceOMR, Formula: "clearance_haulage_omr / container_capacity"},
		{ID: "vat", Label: "VAT", Amount: b.VATOMR, Formula: "(cif_omr + customs_duty_omr + clearance_omr) * vat_rate"},
	}
}
