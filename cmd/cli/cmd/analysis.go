// Package cmd - what-if analysis commands
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tyre-cost/core/analysis"
)

func newScenariosCmd(a *app) *cobra.Command {
	var (
		volumes []float64
		tiers   []string
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Annual cost and savings across volumes and price tiers",
		Example: `  tyre-cost scenarios
  tyre-cost scenarios --volumes 800,1600 --tiers low=170,high=200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, err := a.loadReference()
			if err != nil {
				return err
			}

			priceTiers := analysis.DefaultPriceTiers()
			if len(tiers) > 0 {
				if priceTiers, err = parseTiers(tiers); err != nil {
					return err
				}
			}

			s, err := analysis.CompareScenarios(calc, volumes, priceTiers)
			if err != nil {
				return err
			}

			r := a.newReport("Volume Scenarios", s.Tiers)
			r.Scenarios = s
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().Float64SliceVar(&volumes, "volumes", analysis.DefaultScenarioVolumes, "annual volumes to compare")
	cmd.Flags().StringSliceVar(&tiers, "tiers", nil, "price tiers as name=fob (default budget=175,target=180,premium=195)")
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	var (
		supplierID string
		fob        float64
		volume     float64
		years      int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project cumulative savings over several years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, err := a.loadReference()
			if err != nil {
				return err
			}
			p, err := a.resolvePricing(cmd, supplierID, fob, volume)
			if err != nil {
				return err
			}
			n := a.years(cmd, years)

			proj, err := analysis.Project(calc, p.FOBUSD, p.Volume, n)
			if err != nil {
				return err
			}

			r := a.newReport("Savings Projection", struct {
				Pricing *pricing `json:"pricing"`
				Years   int      `json:"years"`
			}{p, n})
			r.Supplier = p.Supplier
			r.Projection = proj
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVarP(&supplierID, "supplier", "s", "", "supplier id")
	cmd.Flags().Float64Var(&fob, "fob", 0, "FOB price per unit in USD (default: supplier midpoint)")
	cmd.Flags().Float64VarP(&volume, "volume", "n", fallbackVolume, "annual volume in units")
	cmd.Flags().IntVar(&years, "years", 5, "number of years")
	return cmd
}

func newBreakEvenCmd(a *app) *cobra.Command {
	var (
		targets []string
		volume  float64
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Highest FOB price that lands at or below a target cost",
		Long: `Solve the landed-cost formula backwards: for each target landed cost
per unit in OMR, print the FOB price in USD that lands exactly on it.

Without --target the incumbent price and the growth target are used.`,
		Example: `  tyre-cost breakeven
  tyre-cost breakeven --target 100 --target 92.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, calc, err := a.loadReference()
			if err != nil {
				return err
			}

			var amounts []decimal.Decimal
			if len(targets) > 0 {
				if amounts, err = parseAmounts(targets); err != nil {
					return err
				}
			} else {
				growth, err := a.growthTarget()
				if err != nil {
					return err
				}
				amounts = []decimal.Decimal{data.Constants.CurrentPriceOMR, growth}
			}

			vol := a.volume(cmd, volume)
			bes, err := analysis.BreakEvenTargets(calc, vol, amounts...)
			if err != nil {
				return err
			}

			r := a.newReport("Break-even Analysis", struct {
				Targets []decimal.Decimal `json:"targets"`
				Volume  float64           `json:"volume"`
			}{amounts, vol})
			r.BreakEvens = bes
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "target landed cost per unit in OMR (repeatable)")
	cmd.Flags().Float64VarP(&volume, "volume", "n", fallbackVolume, "annual volume in units")
	return cmd
}

func newHeatmapCmd(a *app) *cobra.Command {
	var (
		target  string
		volumes []float64
		prices  []float64
	)

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Annual savings over a grid of volumes and FOB prices",
		Long: `Annual savings against a target price for every volume and FOB price
pair. Cells are banded: a loss, under 20K OMR, 20K to 40K, and 40K or more.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, calc, err := a.loadReference()
			if err != nil {
				return err
			}

			targetOMR := data.Constants.CurrentPriceOMR
			if target != "" {
				if targetOMR, err = parseAmount(target); err != nil {
					return err
				}
			}

			h, err := analysis.BuildHeatmap(calc, targetOMR, volumes, prices)
			if err != nil {
				return err
			}

			r := a.newReport("Savings Heatmap", struct {
				Target  string    `json:"target"`
				Volumes []float64 `json:"volumes"`
				Prices  []float64 `json:"prices"`
			}{targetOMR.String(), volumes, prices})
			r.Heatmap = h
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "price to compare against in OMR (default: incumbent price)")
	cmd.Flags().Float64SliceVar(&volumes, "volumes", analysis.DefaultHeatmapVolumes, "annual volumes (rows)")
	cmd.Flags().Float64SliceVar(&prices, "prices", analysis.DefaultHeatmapPrices, "FOB prices in USD (columns)")
	return cmd
}
