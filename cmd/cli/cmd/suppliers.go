package cmd

import (
	"github.com/spf13/cobra"

	"tyre-cost/core/analysis"
)

func newSuppliersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suppliers [id]",
		Short: "List the supplier catalog, or show one supplier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, calc, err := a.loadReference()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				r := a.newReport("Suppliers", data.Catalog.IDs())
				r.Catalog = data.Catalog.All()
				return a.render(cmd.OutOrStdout(), r)
			}

			s, err := data.Catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			vol := a.volume(cmd, 0)
			q, err := analysis.QuoteSupplier(calc, s, vol)
			if err != nil {
				return err
			}

			r := a.newReport(s.Name+" "+s.Model, struct {
				ID     string  `json:"id"`
				Volume float64 `json:"volume"`
			}{s.ID, vol})
			r.Supplier = &s
			r.Catalog = append(r.Catalog, s)
			r.Breakdown = q.Default
			r.Suppliers = &analysis.SupplierComparison{
				Volume: vol,
				Quotes: []analysis.SupplierQuote{*q},
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	var volume float64

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every supplier at one volume and recommend one",
		Long: `Quote every supplier at the bottom, midpoint and top of its FOB range.

The recommendation is the cheapest supplier at its midpoint price whose
risk is not high; parallel imports are shown but never recommended.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, calc, err := a.loadReference()
			if err != nil {
				return err
			}
			vol := a.volume(cmd, volume)
			cmp, err := analysis.CompareSuppliers(calc, data.Catalog, vol)
			if err != nil {
				return err
			}

			r := a.newReport("Supplier Comparison", struct {
				Volume float64 `json:"volume"`
			}{vol})
			r.Suppliers = cmp
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().Float64VarP(&volume, "volume", "n", fallbackVolume, "annual volume in units")
	return cmd
}
