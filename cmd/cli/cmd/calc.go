// Package cmd - calc command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tyre-cost/internal/logging"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		supplierID string
		fob        float64
		volume     float64
		target     string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the landed cost for one supplier and volume",
		Long: `Calculate the per-unit landed cost in OMR, the savings against the
incumbent price and the annual savings at the given volume.

Without --fob the supplier's default price (the midpoint of its quoted
range) is used. An explicit --fob is used as given.

Examples:
  tyre-cost calc
  tyre-cost calc --supplier aeolus --volume 1500
  tyre-cost calc --fob 180 --volume 1000 --target 92.5
  tyre-cost calc --supplier parallel --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, err := a.loadReference()
			if err != nil {
				return err
			}
			p, err := a.resolvePricing(cmd, supplierID, fob, volume)
			if err != nil {
				return err
			}

			var targetOMR *decimal.Decimal
			if target != "" {
				d, err := parseAmount(target)
				if err != nil {
					return err
				}
				targetOMR = &d
			}

			b, err := calc.Calculate(p.FOBUSD, p.Volume)
			if err != nil {
				return err
			}
			logging.Debug("landed cost calculated",
				zap.Float64("fob_usd", p.FOBUSD),
				zap.Float64("volume", p.Volume),
				zap.String("total_omr", b.TotalLandedCostOMR.String()),
			)

			r := a.newReport("Landed Cost", struct {
				Pricing *pricing `json:"pricing"`
				Target  string   `json:"target,omitempty"`
			}{p, target})
			r.Supplier = p.Supplier
			r.Breakdown = b
			r.TargetOMR = targetOMR
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVarP(&supplierID, "supplier", "s", "", "supplier id (see 'tyre-cost suppliers')")
	cmd.Flags().Float64Var(&fob, "fob", 0, "FOB price per unit in USD (default: supplier midpoint)")
	cmd.Flags().Float64VarP(&volume, "volume", "n", fallbackVolume, "annual volume in units")
	cmd.Flags().StringVar(&target, "target", "", "target landed cost per unit in OMR")
	return cmd
}
