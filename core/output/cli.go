package output

import (
	"io"

	"tyre-cost/core/ui"
)

// CLIFormatter renders a report for a terminal
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report
func (f *CLIFormatter) Render(w io.Writer, r *Report) error {
	out := ui.NewWriter(w, f.noColor)
	out.Header(r.Title)

	if b := r.Breakdown; b != nil {
		if r.Supplier != nil {
			out.Println("%s", out.Color(ui.Bold, r.Supplier.Name+" "+r.Supplier.Model))
			out.Println("%s", out.Color(ui.Dim, r.Supplier.Warranty+" warranty, "+r.Supplier.RiskLabel))
			out.Println("")
		}

		summary := out.NewSavingsSummary()
		summary.LandedCost = FormatMoneyWithUnit(b.TotalLandedCostOMR, "OMR") + " (" + FormatMoneyWithUnit(b.TotalLandedCostUSD, "USD") + ")"
		summary.Incumbent = FormatMoneyWithUnit(r.Constants.CurrentPriceOMR, "OMR")
		summary.SavingsPerUnit = FormatMoneyWithUnit(b.SavingsPerUnitOMR, "OMR")
		summary.SavingsPct = b.SavingsPercentage.InexactFloat64()
		summary.AnnualSavings = FormatMoneyWithUnit(b.AnnualSavingsOMR, "OMR") + " (" + FormatMoneyWithUnit(b.AnnualSavingsUSD, "USD") + ")"
		summary.Profitable = b.IsProfitable()
		summary.Render()

		if r.TargetOMR != nil {
			if b.MeetsTarget(*r.TargetOMR) {
				out.Success("meets target of %s", FormatMoneyWithUnit(*r.TargetOMR, "OMR"))
			} else {
				out.Warning("misses target of %s by %s", FormatMoneyWithUnit(*r.TargetOMR, "OMR"),
					FormatMoneyWithUnit(b.TotalLandedCostOMR.Sub(*r.TargetOMR), "OMR"))
			}
		}
		out.Println("")

		out.SubHeader("Cost Distribution")
		for _, c := range b.Components() {
			share := c.Share(b.TotalLandedCostOMR).Shift(-2).InexactFloat64()
			out.Bar(c.Label, share, 30, FormatMoneyWithUnit(c.Amount, "OMR"))
		}
		out.Println("")
	}

	for _, t := range Tables(r) {
		if t.Sheet == "Components" {
			continue
		}
		renderTable(out, t)
	}

	if r.Suppliers != nil && r.Suppliers.Recommended != "" {
		for _, q := range r.Suppliers.Quotes {
			if q.Supplier.ID == r.Suppliers.Recommended {
				out.Success("recommended: %s at %s OMR landed", q.Supplier.Name, FormatMoney(q.Default.TotalLandedCostOMR))
			}
		}
	}

	out.Println("%s", out.Color(ui.Dim, "report "+r.Metadata.ID+" · "+r.Metadata.Timestamp))
	return nil
}

func renderTable(out *ui.Writer, t Table) {
	out.SubHeader(t.Title)
	table := out.NewTable(t.Headers...)
	if len(t.Rows) > 0 {
		for i, c := range t.Rows[0] {
			if IsNumeric(c) {
				table.AlignRight(i)
			}
		}
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = CellText(c)
		}
		table.AddRow(cells...)
	}
	table.Render()
	for _, n := range t.Notes {
		out.Println("%s", out.Color(ui.Dim, n))
	}
	out.Println("")
}
