// Package cmd - verify command
package cmd

import (
	"github.com/spf13/cobra"

	"tyre-cost/core/landed"
	"tyre-cost/core/output"
	"tyre-cost/core/ui"
	"tyre-cost/internal/errors"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the engine against the verified reference figures",
		Long: `Run the built-in constants through the engine and compare with the
verified Q4 2024 figures ($180 FOB lands at 82.93 OMR; Triangle at $175
lands at 80.78 OMR, saving 29.76%). Then validate the reference data in
use, including any --reference file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := ui.NewWriter(cmd.OutOrStdout(), a.colorDisabled())
			w.Header("Reference Check")

			results, err := landed.Default().Verify(landed.ReferenceAnchors())
			if err != nil {
				w.Error("%v", err)
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Passed {
					w.Success("%s: %s = %s", r.Anchor.Name, r.Anchor.Field, output.FormatMoney(r.Got))
					continue
				}
				failed++
				w.Error("%s: %s = %s, want %s ± %s", r.Anchor.Name, r.Anchor.Field,
					r.Got.StringFixed(4), r.Anchor.Want, r.Anchor.Tolerance)
			}

			data, _, err := a.loadReference()
			if err != nil {
				w.Error("reference data: %v", err)
				return err
			}
			if err := data.Validate(); err != nil {
				w.Error("reference data: %v", err)
				return err
			}
			w.Success("reference data: %d suppliers, constants valid", data.Catalog.Len())

			if failed > 0 {
				return errors.Newf(errors.TypeInternal, "%d of %d reference checks failed", failed, len(results))
			}
			return nil
		},
	}
}
