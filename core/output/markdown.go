package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown
type MarkdownFormatter struct {
	// IncludeConstants appends the constants table
	IncludeConstants bool
}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{IncludeConstants: true}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", r.Title)
	fmt.Fprintf(bw, "_Generated %s · version %s · report `%s`_\n\n", r.Metadata.Timestamp, r.Metadata.Version, r.Metadata.ID)

	if b := r.Breakdown; b != nil {
		status := "**Profitable**"
		if !b.IsProfitable() {
			status = "**Not profitable**"
		}
		fmt.Fprintf(bw, "%s: landed cost **%s OMR** against %s OMR incumbent, saving %s per unit (%s).\n\n",
			status, FormatMoney(b.TotalLandedCostOMR), FormatMoney(r.Constants.CurrentPriceOMR),
			FormatMoney(b.SavingsPerUnitOMR), FormatPercent(b.SavingsPercentage))
	}

	tables := Tables(r)
	if f.IncludeConstants {
		tables = append(tables, ConstantsTable(r.Constants))
	}
	for _, t := range tables {
		writeMarkdownTable(bw, t)
	}
	return bw.Flush()
}

func writeMarkdownTable(w io.Writer, t Table) {
	fmt.Fprintf(w, "## %s\n\n", t.Title)

	fmt.Fprintf(w, "| %s |\n", strings.Join(escapeAll(t.Headers), " | "))
	align := make([]string, len(t.Headers))
	for i := range align {
		align[i] = "---"
		if len(t.Rows) > 0 && i < len(t.Rows[0]) && IsNumeric(t.Rows[0][i]) {
			align[i] = "---:"
		}
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(align, "|"))

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapeMarkdown(CellText(c))
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(w)

	for _, n := range t.Notes {
		fmt.Fprintf(w, "> %s\n", n)
	}
	if len(t.Notes) > 0 {
		fmt.Fprintln(w)
	}
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = escapeMarkdown(s)
	}
	return out
}

var markdownEscaper = strings.NewReplacer("|", "\\|", "\\", "\\\\")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
