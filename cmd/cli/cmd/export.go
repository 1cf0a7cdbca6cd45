// Package cmd - export command
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tyre-cost/core/analysis"
	"tyre-cost/core/output"
	"tyre-cost/internal/errors"
	"tyre-cost/internal/logging"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		out        string
		supplierID string
		fob        float64
		volume     float64
		years      int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full analysis to a file",
		Long: `Write every section (landed cost, suppliers, scenarios, projection,
break-even and heatmap) to one file.

The format follows the file extension (.xlsx, .json, .yaml, .md) unless
--format is given. Workbooks get one sheet per section.`,
		Example: `  tyre-cost export --out analysis.xlsx
  tyre-cost export --out report.md --supplier aeolus --volume 1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := exportFormat(a.format, out)
			if err != nil {
				return err
			}

			data, calc, err := a.loadReference()
			if err != nil {
				return err
			}
			p, err := a.resolvePricing(cmd, supplierID, fob, volume)
			if err != nil {
				return err
			}
			growth, err := a.growthTarget()
			if err != nil {
				return err
			}

			r := a.newReport("Tyre Import Analysis", struct {
				Pricing *pricing `json:"pricing"`
				Years   int      `json:"years"`
			}{p, a.years(cmd, years)})
			r.Supplier = p.Supplier
			r.TargetOMR = &growth
			r.Catalog = data.Catalog.All()

			if r.Breakdown, err = calc.Calculate(p.FOBUSD, p.Volume); err != nil {
				return err
			}
			if r.Suppliers, err = analysis.CompareSuppliers(calc, data.Catalog, p.Volume); err != nil {
				return err
			}
			if r.Scenarios, err = analysis.CompareScenarios(calc, analysis.DefaultScenarioVolumes, analysis.DefaultPriceTiers()); err != nil {
				return err
			}
			if r.Projection, err = analysis.Project(calc, p.FOBUSD, p.Volume, a.years(cmd, years)); err != nil {
				return err
			}
			if r.BreakEvens, err = analysis.BreakEvenTargets(calc, p.Volume, data.Constants.CurrentPriceOMR, growth); err != nil {
				return err
			}
			if r.Heatmap, err = analysis.BuildHeatmap(calc, data.Constants.CurrentPriceOMR, analysis.DefaultHeatmapVolumes, analysis.DefaultHeatmapPrices); err != nil {
				return err
			}

			if err := writeReport(out, format, r); err != nil {
				return err
			}
			logging.Info("report exported", zap.String("file", out), zap.String("format", string(format)))
			a.note(cmd, "wrote %s (%s)", out, format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file [REQUIRED]")
	cmd.Flags().StringVarP(&supplierID, "supplier", "s", "", "supplier id")
	cmd.Flags().Float64Var(&fob, "fob", 0, "FOB price per unit in USD (default: supplier midpoint)")
	cmd.Flags().Float64VarP(&volume, "volume", "n", fallbackVolume, "annual volume in units")
	cmd.Flags().IntVar(&years, "years", 5, "projection years")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// exportFormat picks the explicit --format, else the file extension
func exportFormat(flag, path string) (output.Format, error) {
	if flag != "" {
		return output.ParseFormat(flag)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", errors.Inputf("cannot infer a format from %q; pass --format", path)
	}
	return output.ParseFormat(ext)
}

func writeReport(path string, format output.Format, r *output.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Output("failed to create output file", err).WithContext("file", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Output("failed to close output file", cerr).WithContext("file", path)
		}
	}()

	// color codes never belong in a file
	return output.Render(f, format, true, r)
}
