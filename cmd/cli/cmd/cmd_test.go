package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"tyre-cost/internal/errors"
)

// run executes the CLI with an isolated config file and no colors
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	cfg := filepath.Join(t.TempDir(), "config.json")
	root.SetArgs(append([]string{"--config", cfg, "--no-color"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

type calcOutput struct {
	Supplier *struct {
		ID string `json:"id"`
	} `json:"supplier"`
	Breakdown struct {
		FOBUSD            decimal.Decimal `json:"fob_usd"`
		Total             decimal.Decimal `json:"total_landed_cost_omr"`
		SavingsPercentage decimal.Decimal `json:"savings_percentage"`
		ContainersNeeded  int64           `json:"containers_needed"`
	} `json:"breakdown"`
}

func decodeCalc(t *testing.T, s string) calcOutput {
	t.Helper()
	var out calcOutput
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, s)
	}
	return out
}

func near(a decimal.Decimal, b string) bool {
	return a.Sub(decimal.RequireFromString(b)).Abs().LessThanOrEqual(decimal.RequireFromString("0.01"))
}

func TestCalcExplicitFOB(t *testing.T) {
	stdout, _, err := run(t, "calc", "--fob", "180", "--volume", "1000", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	out := decodeCalc(t, stdout)
	if !near(out.Breakdown.Total, "82.93") {
		t.Errorf("total %s, want ~82.93", out.Breakdown.Total)
	}
	if out.Supplier != nil {
		t.Errorf("an explicit FOB without --supplier should not name a supplier, got %q", out.Supplier.ID)
	}
	if out.Breakdown.ContainersNeeded != 5 {
		t.Errorf("containers %d, want 5", out.Breakdown.ContainersNeeded)
	}
}

func TestCalcSupplierDefaultFOB(t *testing.T) {
	stdout, _, err := run(t, "calc", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	out := decodeCalc(t, stdout)
	if out.Supplier == nil || out.Supplier.ID != "triangle" {
		t.Fatalf("expected the configured default supplier, got %+v", out.Supplier)
	}
	if !out.Breakdown.FOBUSD.Equal(decimal.NewFromInt(185)) {
		t.Errorf("fob %s, want the 185 midpoint", out.Breakdown.FOBUSD)
	}

	stdout, _, err = run(t, "calc", "--supplier", "triangle", "--fob", "175", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	out = decodeCalc(t, stdout)
	if !near(out.Breakdown.Total, "80.78") || !near(out.Breakdown.SavingsPercentage, "29.76") {
		t.Errorf("triangle at $175: total %s, savings %s%%", out.Breakdown.Total, out.Breakdown.SavingsPercentage)
	}
}

func TestCalcWarnsOutsideBand(t *testing.T) {
	_, stderr, err := run(t, "calc", "--supplier", "triangle", "--fob", "150")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "outside") {
		t.Errorf("expected a band warning, got %q", stderr)
	}
}

func TestCalcCLIOutput(t *testing.T) {
	stdout, _, err := run(t, "calc", "--fob", "180", "--target", "92.5")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Landed Cost", "82.92 OMR", "meets target", "Cost Distribution"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCalcInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		errType errors.Type
	}{
		{"negative fob", []string{"calc", "--fob", "-5"}, errors.TypeInput},
		{"zero fob", []string{"calc", "--fob", "0"}, errors.TypeInput},
		{"zero volume", []string{"calc", "--volume", "0"}, errors.TypeInput},
		{"nan fob", []string{"calc", "--fob", "NaN"}, errors.TypeInput},
		{"bad target", []string{"calc", "--target", "abc"}, errors.TypeInput},
		{"unknown supplier", []string{"calc", "--supplier", "michelin"}, errors.TypeNotFound},
		{"unknown format", []string{"calc", "--format", "pdf"}, errors.TypeInput},
		{"binary format", []string{"calc", "--format", "xlsx"}, errors.TypeInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if !errors.IsType(err, tt.errType) {
				t.Errorf("expected %s, got %v", tt.errType, err)
			}
		})
	}
}

func TestSuppliers(t *testing.T) {
	stdout, _, err := run(t, "suppliers", "--format", "markdown")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Triangle Tyre", "Aeolus Tyre", "Parallel Import", "| ID |"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	stdout, _, err = run(t, "suppliers", "aeolus")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Aeolus") {
		t.Errorf("detail output missing supplier:\n%s", stdout)
	}

	if _, _, err := run(t, "suppliers", "nope"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	stdout, _, err := run(t, "compare", "--volume", "1500", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Suppliers struct {
			Volume      float64 `json:"volume"`
			Recommended string  `json:"recommended"`
			Quotes      []interface{}
		} `json:"suppliers"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatal(err)
	}
	if out.Suppliers.Volume != 1500 || out.Suppliers.Recommended != "triangle" || len(out.Suppliers.Quotes) != 3 {
		t.Errorf("unexpected comparison %+v", out.Suppliers)
	}
}

func TestScenarios(t *testing.T) {
	stdout, _, err := run(t, "scenarios", "--volumes", "800,1600", "--tiers", "low=170,high=200", "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"scenarios:", "name: low", "name: high", "volume: 1600"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("yaml missing %q:\n%s", want, stdout)
		}
	}

	if _, _, err := run(t, "scenarios", "--tiers", "nofob"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestProject(t *testing.T) {
	stdout, _, err := run(t, "project", "--fob", "180", "--years", "3", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Projection struct {
			Years []struct {
				Year int `json:"year"`
			} `json:"years"`
		} `json:"projection"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Projection.Years) != 3 {
		t.Errorf("expected 3 years, got %d", len(out.Projection.Years))
	}

	if _, _, err := run(t, "project", "--years", "0"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestBreakEven(t *testing.T) {
	stdout, _, err := run(t, "breakeven", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		BreakEvens []struct {
			TargetOMR decimal.Decimal `json:"target_omr"`
			FOBUSD    decimal.Decimal `json:"fob_usd"`
		} `json:"break_evens"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.BreakEvens) != 2 {
		t.Fatalf("expected incumbent and growth targets, got %d", len(out.BreakEvens))
	}
	if !out.BreakEvens[0].TargetOMR.Equal(decimal.NewFromInt(115)) {
		t.Errorf("first target %s", out.BreakEvens[0].TargetOMR)
	}
	if !out.BreakEvens[1].FOBUSD.LessThan(out.BreakEvens[0].FOBUSD) {
		t.Error("the growth target should need a lower FOB")
	}

	if _, _, err := run(t, "breakeven", "--target", "-1"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestHeatmap(t *testing.T) {
	stdout, _, err := run(t, "heatmap", "--volumes", "500,1000", "--prices", "155,175")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Annual Savings Heatmap") || !strings.Contains(stdout, "$155") {
		t.Errorf("unexpected heatmap output:\n%s", stdout)
	}

	if _, _, err := run(t, "heatmap", "--target", "0"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	_, stderr, err := run(t, "export", "--out", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "wrote") {
		t.Errorf("expected a confirmation, got %q", stderr)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	sheets := strings.Join(wb.GetSheetList(), ",")
	for _, want := range []string{"Summary", "Landed Cost", "Supplier Comparison", "Heatmap"} {
		if !strings.Contains(sheets, want) {
			t.Errorf("workbook missing sheet %q (have %s)", want, sheets)
		}
	}
}

func TestExportMarkdownAndFormatInference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	if _, _, err := run(t, "export", "--out", path, "--supplier", "aeolus"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Tyre Import Analysis") {
		t.Errorf("unexpected markdown start: %.40q", data)
	}

	if _, _, err := run(t, "export", "--out", filepath.Join(dir, "noext")); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	stdout, _, err := run(t, "verify")
	if err != nil {
		t.Fatalf("verify failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "reference landed cost at $180") || !strings.Contains(stdout, "reference data: 3 suppliers") {
		t.Errorf("unexpected verify output:\n%s", stdout)
	}
}

func TestReferenceFileOverridesConstants(t *testing.T) {
	ref := filepath.Join(t.TempDir(), "reference.hcl")
	if err := os.WriteFile(ref, []byte("constants {\n  current_price_omr = 100\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "--reference", ref, "calc", "--fob", "180", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Constants struct {
			CurrentPriceOMR decimal.Decimal `json:"current_price_omr"`
		} `json:"constants"`
		Breakdown struct {
			Savings decimal.Decimal `json:"savings_per_unit_omr"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Constants.CurrentPriceOMR.Equal(decimal.NewFromInt(100)) {
		t.Errorf("incumbent %s, want 100", out.Constants.CurrentPriceOMR)
	}
	if !near(out.Breakdown.Savings, "17.08") {
		t.Errorf("savings %s, want ~17.08", out.Breakdown.Savings)
	}

	bad := filepath.Join(t.TempDir(), "bad.hcl")
	if err := os.WriteFile(bad, []byte("constants {\n  vat_rate = \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "--reference", bad, "verify"); !errors.IsType(err, errors.TypeParsing) {
		t.Errorf("expected PARSING_ERROR, got %v", err)
	}
}

func TestVersionAndConfig(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "tyre-cost version "+Version) {
		t.Errorf("version output %q", stdout)
	}

	cfg := filepath.Join(t.TempDir(), "tyre-cost.json")
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg); err != nil {
		t.Fatalf("config init did not write %s: %v", cfg, err)
	}

	root = NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfg, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"supplier": "triangle"`) {
		t.Errorf("unexpected config show output:\n%s", out.String())
	}

	root = NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "config", "init"})
	if err := root.Execute(); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INVALID_INPUT for an existing file, got %v", err)
	}
}
