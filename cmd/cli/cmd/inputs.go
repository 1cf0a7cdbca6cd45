package cmd

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tyre-cost/core/analysis"
	"tyre-cost/core/reference"
	"tyre-cost/internal/errors"
	"tyre-cost/internal/logging"
)

// fallbackVolume is used when neither the flag nor the config sets one
const fallbackVolume = 1000

// pricing is the supplier and FOB price a command runs with
type pricing struct {
	Supplier *reference.SupplierInfo `json:"supplier,omitempty"`
	FOBUSD   float64                 `json:"fob_usd"`
	Volume   float64                 `json:"volume"`
}

// resolveSupplier resolves the supplier flag. An explicit id must exist; the
// configured default falls back to the first catalog entry.
func (a *app) resolveSupplier(cmd *cobra.Command, id string) (*reference.SupplierInfo, error) {
	data, _, err := a.loadReference()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("supplier") {
		s, err := data.Catalog.Lookup(id)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}

	if a.cfg != nil && a.cfg.Defaults.Supplier != "" {
		if s, err := data.Catalog.Lookup(a.cfg.Defaults.Supplier); err == nil {
			return &s, nil
		}
		logging.Debug("configured supplier not in catalog",
			zap.String("supplier", a.cfg.Defaults.Supplier))
	}
	s, ok := data.Catalog.First()
	if !ok {
		return nil, errors.Config("supplier catalog is empty")
	}
	return &s, nil
}

// resolvePricing resolves --supplier, --fob and --volume. An explicit FOB is
// used as given, with a warning when it is outside the supplier's band.
func (a *app) resolvePricing(cmd *cobra.Command, supplierID string, fob, volume float64) (*pricing, error) {
	p := &pricing{FOBUSD: fob, Volume: a.volume(cmd, volume)}

	s, err := a.resolveSupplier(cmd, supplierID)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("fob") {
		if cmd.Flags().Changed("supplier") {
			p.Supplier = s
			if clamped := reference.Clamp(*s, fob); clamped != fob {
				a.warn(cmd, "FOB $%v is outside %s's quoted range $%v-$%v", fob, s.Name, s.FOBMin, s.FOBMax)
			}
		}
		return p, nil
	}

	p.Supplier = s
	p.FOBUSD = reference.DefaultFOB(*s)
	return p, nil
}

func (a *app) volume(cmd *cobra.Command, v float64) float64 {
	if cmd.Flags().Changed("volume") {
		return v
	}
	if a.cfg != nil && a.cfg.Defaults.Volume > 0 {
		return a.cfg.Defaults.Volume
	}
	return fallbackVolume
}

func (a *app) years(cmd *cobra.Command, years int) int {
	if cmd.Flags().Changed("years") {
		return years
	}
	if a.cfg != nil && a.cfg.Defaults.Years > 0 {
		return a.cfg.Defaults.Years
	}
	return years
}

// growthTarget is the configured target landed cost, or the built-in one
func (a *app) growthTarget() (decimal.Decimal, error) {
	if a.cfg == nil || a.cfg.Defaults.TargetOMR == "" {
		return analysis.GrowthTargetOMR, nil
	}
	d, err := parseAmount(a.cfg.Defaults.TargetOMR)
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.TypeConfig, "invalid defaults.target_omr", err)
	}
	return d, nil
}

// parseAmount parses an OMR amount given on the command line
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.Inputf("invalid amount %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, errors.Inputf("amount must be positive, got %s", d)
	}
	return d, nil
}

func parseAmounts(in []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(in))
	for _, s := range in {
		d, err := parseAmount(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// parseTiers parses name=fob pairs, keeping their order
func parseTiers(in []string) ([]analysis.PriceTier, error) {
	tiers := make([]analysis.PriceTier, 0, len(in))
	for _, pair := range in {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.Inputf("price tier %q must look like name=fob", pair)
		}
		fob, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Inputf("price tier %q has an invalid FOB price", pair)
		}
		tiers = append(tiers, analysis.PriceTier{Name: strings.TrimSpace(name), FOBUSD: fob})
	}
	return tiers, nil
}
