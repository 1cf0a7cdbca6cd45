package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"tyre-cost/core/analysis"
	"tyre-cost/core/landed"
	"tyre-cost/core/reference"
)

// Cell kinds. Text renderers format them; the workbook keeps them numeric.
type (
	// Money is a currency amount shown with two decimals
	Money decimal.Decimal

	// MoneyK is a currency amount abbreviated with a K suffix
	MoneyK decimal.Decimal

	// Percent is a percentage shown with one decimal
	Percent decimal.Decimal

	// Units is a count with thousands separators
	Units float64

	// USD is a FOB price in dollars
	USD float64
)

// Table is one renderable section of a report
type Table struct {
	// Sheet is a short name used for workbook sheets (max 31 chars)
	Sheet   string
	Title   string
	Headers []string
	Rows    [][]interface{}
	Notes   []string
}

func (t *Table) add(cells ...interface{}) {
	t.Rows = append(t.Rows, cells)
}

// CellText formats a table cell for text output
func CellText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case Money:
		return FormatMoney(decimal.Decimal(c))
	case MoneyK:
		return FormatK(decimal.Decimal(c))
	case Percent:
		return FormatPercent(decimal.Decimal(c))
	case Units:
		return FormatVolume(float64(c))
	case USD:
		return FormatUSDPrice(float64(c))
	case heatCell:
		return FormatK(c.AnnualSavingsOMR) + " " + BandMark(c.Band)
	case decimal.Decimal:
		return c.String()
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		if c {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// CellValue returns the raw value of a cell for spreadsheet output.
// Amounts are rounded to the displayed precision.
func CellValue(v interface{}) interface{} {
	switch c := v.(type) {
	case Money:
		f, _ := decimal.Decimal(c).Round(2).Float64()
		return f
	case MoneyK:
		f, _ := decimal.Decimal(c).Round(2).Float64()
		return f
	case Percent:
		f, _ := decimal.Decimal(c).Round(1).Float64()
		return f
	case Units:
		return float64(c)
	case USD:
		return float64(c)
	case heatCell:
		f, _ := c.AnnualSavingsOMR.Round(2).Float64()
		return f
	case decimal.Decimal:
		f, _ := c.Float64()
		return f
	case nil:
		return ""
	default:
		return v
	}
}

// IsNumeric reports whether a cell should be right-aligned
func IsNumeric(v interface{}) bool {
	switch v.(type) {
	case Money, MoneyK, Percent, Units, USD, heatCell, decimal.Decimal, int, int64, float64:
		return true
	}
	return false
}

// Tables flattens the populated sections of a report into tables,
// in a fixed order.
func Tables(r *Report) []Table {
	var out []Table
	if r.Breakdown != nil {
		out = append(out, breakdownTable(r.Breakdown, r.Supplier))
		out = append(out, savingsTable(r.Breakdown, r.Constants, r.TargetOMR))
		out = append(out, componentsTable(r.Breakdown))
	}
	if len(r.Catalog) > 0 {
		out = append(out, catalogTable(r.Catalog))
	}
	if r.Suppliers != nil {
		out = append(out, suppliersTable(r.Suppliers))
	}
	if r.Scenarios != nil {
		out = append(out, scenariosTable(r.Scenarios))
	}
	if r.Projection != nil {
		out = append(out, projectionTable(r.Projection))
	}
	if len(r.BreakEvens) > 0 {
		out = append(out, breakEvenTable(r.BreakEvens))
	}
	if r.Heatmap != nil {
		out = append(out, heatmapTable(r.Heatmap))
	}
	return out
}

// ConstantsTable lists the economic constants in effect
func ConstantsTable(k reference.EconomicConstants) Table {
	t := Table{
		Sheet:   "Constants",
		Title:   "Economic Constants",
		Headers: []string{"Constant", "Value"},
	}
	t.add("USD to OMR rate", k.USDToOMRRate)
	t.add("Incumbent price (OMR)", Money(k.CurrentPriceOMR))
	t.add("Ocean freight per container (USD)", Money(k.OceanFreightUSD))
	t.add("Container capacity (units)", k.ContainerCapacity)
	t.add("Clearance and haulage per container (OMR)", Money(k.ClearanceHaulageOMR))
	t.add("Customs duty rate", Percent(k.CustomsDutyRate.Shift(2)))
	t.add("VAT rate", Percent(k.VATRate.Shift(2)))
	t.add("Insurance rate", Percent(k.InsuranceRate.Shift(2)))
	return t
}

func breakdownTable(b *landed.CostBreakdown, s *reference.SupplierInfo) Table {
	t := Table{
		Sheet:   "Landed Cost",
		Title:   "Landed Cost Breakdown (per unit)",
		Headers: []string{"Item", "USD", "OMR"},
	}
	if s != nil {
		t.Notes = append(t.Notes, s.Name+" "+s.Model+" ("+s.RiskLabel+")")
	}
	t.add("FOB price", Money(b.FOBUSD), Money(b.FOBOMR))
	t.add("Insurance", Money(b.InsuranceUSD), Money(b.InsuranceOMR))
	t.add("Ocean freight", Money(b.OceanFreightUSD), Money(b.OceanFreightOMR))
	t.add("CIF value", Money(b.CIFUSD), Money(b.CIFOMR))
	t.add("Customs duty", "", Money(b.CustomsDutyOMR))
	t.add("Clearance and haulage", "", Money(b.ClearanceOMR))
	t.add("Subtotal", "", Money(b.SubtotalOMR))
	t.add("VAT", "", Money(b.VATOMR))
	t.add("Total landed cost", Money(b.TotalLandedCostUSD), Money(b.TotalLandedCostOMR))
	return t
}

func savingsTable(b *landed.CostBreakdown, k reference.EconomicConstants, target *decimal.Decimal) Table {
	t := Table{
		Sheet:   "Savings",
		Title:   "Savings vs Incumbent",
		Headers: []string{"Metric", "Value"},
	}
	t.add("Annual volume (units)", Units(b.Volume.InexactFloat64()))
	t.add("Incumbent price (OMR)", Money(k.CurrentPriceOMR))
	t.add("Savings per unit (OMR)", Money(b.SavingsPerUnitOMR))
	t.add("Savings", Percent(b.SavingsPercentage))
	t.add("Annual savings (OMR)", Money(b.AnnualSavingsOMR))
	t.add("Annual savings (USD)", Money(b.AnnualSavingsUSD))
	t.add("Containers needed", b.ContainersNeeded)
	t.add("Annual landed cost (OMR)", Money(b.TotalContainerCostOMR))
	if target != nil {
		t.add("Target price (OMR)", Money(*target))
		t.add("Meets target", b.MeetsTarget(*target))
	}
	return t
}

func componentsTable(b *landed.CostBreakdown) Table {
	t := Table{
		Sheet:   "Components",
		Title:   "Cost Distribution",
		Headers: []string{"Component", "OMR", "Share", "Formula"},
	}
	for _, c := range b.Components() {
		t.add(c.Label, Money(c.Amount), Percent(c.Share(b.TotalLandedCostOMR)), c.Formula)
	}
	return t
}

func catalogTable(catalog []reference.SupplierInfo) Table {
	t := Table{
		Sheet:   "Catalog",
		Title:   "Suppliers",
		Headers: []string{"ID", "Supplier", "Model", "FOB min", "FOB max", "Default FOB", "Warranty", "Risk"},
	}
	for _, s := range catalog {
		t.add(s.ID, s.Name, s.Model, USD(s.FOBMin), USD(s.FOBMax), USD(reference.DefaultFOB(s)), s.Warranty, s.RiskLabel)
	}
	return t
}

func suppliersTable(c *analysis.SupplierComparison) Table {
	t := Table{
		Sheet:   "Supplier Comparison",
		Title:   "Supplier Comparison at " + FormatVolume(c.Volume) + " units/year",
		Headers: []string{"Supplier", "Risk", "FOB", "Landed (low)", "Landed", "Landed (high)", "Savings", "Annual savings", "Recommended"},
	}
	for _, q := range c.Quotes {
		rec := ""
		if q.Supplier.ID == c.Recommended {
			rec = "★"
		}
		t.add(q.Supplier.Name, string(q.Supplier.RiskLevel), USD(q.Default.FOBUSD.InexactFloat64()),
			Money(q.Low.TotalLandedCostOMR), Money(q.Default.TotalLandedCostOMR), Money(q.High.TotalLandedCostOMR),
			Percent(q.Default.SavingsPercentage), Money(q.Default.AnnualSavingsOMR), rec)
	}
	if c.Recommended == "" {
		t.Notes = append(t.Notes, "no supplier below high risk; nothing recommended")
	}
	return t
}

func scenariosTable(s *analysis.Scenarios) Table {
	t := Table{
		Sheet:   "Scenarios",
		Title:   "Volume Scenarios (annual OMR)",
		Headers: []string{"Volume", "Incumbent"},
	}
	for _, tier := range s.Tiers {
		t.Headers = append(t.Headers, tier.Name+" "+FormatUSDPrice(tier.FOBUSD), tier.Name+" savings")
	}
	for _, row := range s.Rows {
		cells := []interface{}{Units(row.Volume), MoneyK(row.IncumbentAnnualOMR)}
		for _, tr := range row.Tiers {
			cells = append(cells, MoneyK(tr.AnnualCostOMR), MoneyK(tr.AnnualSavingsOMR))
		}
		t.add(cells...)
	}
	return t
}

func projectionTable(p *analysis.Projection) Table {
	t := Table{
		Sheet:   "Projection",
		Title:   "Savings Projection at " + FormatUSDPrice(p.FOBUSD) + ", " + FormatVolume(p.Volume) + " units/year",
		Headers: []string{"Year", "Cumulative OMR", "Cumulative USD"},
	}
	for _, y := range p.Years {
		t.add(y.Year, Money(y.CumulativeSavingsOMR), Money(y.CumulativeSavingsUSD))
	}
	return t
}

func breakEvenTable(bes []*analysis.BreakEven) Table {
	t := Table{
		Sheet:   "Break-even",
		Title:   "Break-even FOB Prices",
		Headers: []string{"Target landed cost (OMR)", "Max FOB (USD)", "Landed at max FOB (OMR)"},
	}
	for _, be := range bes {
		t.add(Money(be.TargetOMR), Money(be.FOBUSD), Money(be.Check.TotalLandedCostOMR))
	}
	return t
}

var bandMarks = map[analysis.Band]string{
	analysis.BandLoss:      "✗",
	analysis.BandMarginal:  "·",
	analysis.BandGood:      "+",
	analysis.BandExcellent: "★",
}

// BandMark is the one-character marker used for a heatmap band
func BandMark(b analysis.Band) string {
	return bandMarks[b]
}

func heatmapTable(h *analysis.Heatmap) Table {
	t := Table{
		Sheet:   "Heatmap",
		Title:   "Annual Savings Heatmap vs " + FormatMoneyWithUnit(h.TargetOMR, "OMR"),
		Headers: []string{"Volume \\ FOB"},
		Notes:   []string{"✗ loss  · under 20K  + 20K-40K  ★ 40K and above"},
	}
	for _, p := range h.Prices {
		t.Headers = append(t.Headers, FormatUSDPrice(p))
	}
	for i, row := range h.Cells {
		cells := []interface{}{Units(h.Volumes[i])}
		for _, c := range row {
			cells = append(cells, heatCell{c})
		}
		t.add(cells...)
	}
	return t
}

// heatCell renders as "70.6K ★" in text and as the raw amount in a workbook
type heatCell struct {
	analysis.HeatmapCell
}
