// Package cmd provides the CLI commands for tyre-cost.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tyre-cost/adapters/hcl"
	"tyre-cost/core/landed"
	"tyre-cost/core/output"
	"tyre-cost/core/reference"
	"tyre-cost/core/ui"
	"tyre-cost/internal/config"
	"tyre-cost/internal/errors"
	"tyre-cost/internal/logging"
)

// Version is the tool version, set at build time with -ldflags
var Version = "0.1.0"

// app holds the global flags and everything loaded from them. Each
// root command gets its own so tests can run commands side by side.
type app struct {
	cfgFile       string
	referencePath string
	format        string
	noColor       bool
	verbose       bool

	cfg  *config.Config
	data *reference.Data
	calc *landed.Calculator
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tyre-cost",
		Short: "Landed cost calculator for importing truck tyres from China to Oman",
		Long: `tyre-cost computes the landed cost of importing tyres from Chinese
suppliers into Oman and compares it with the incumbent distributor price.

Every figure follows one formula: FOB plus insurance plus ocean freight
gives CIF, converted to OMR; customs duty is charged on CIF, clearance
and haulage are added, and VAT applies to that subtotal.

Examples:
  tyre-cost calc --supplier triangle --volume 1000
  tyre-cost calc --fob 180 --format json
  tyre-cost compare --volume 1500
  tyre-cost breakeven --target 92.5
  tyre-cost export --out analysis.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/"+config.FileName+")")
	flags.StringVar(&a.referencePath, "reference", "", "HCL file overriding constants and suppliers")
	flags.StringVarP(&a.format, "format", "f", "", "output format (cli, json, yaml, markdown)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newCalcCmd(a),
		newSuppliersCmd(a),
		newCompareCmd(a),
		newScenariosCmd(a),
		newProjectCmd(a),
		newBreakEvenCmd(a),
		newHeatmapCmd(a),
		newExportCmd(a),
		newVerifyCmd(a),
		newVersionCmd(),
		newConfigCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return NewRootCmd().Execute()
}

func (a *app) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Set(cfg)
	a.cfg = cfg

	// Initialize logging
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return errors.Wrap(errors.TypeConfig, "failed to initialize logging", err)
	}
	logging.Debug("configuration loaded", zap.String("file", path))
	return nil
}

// loadReference loads the reference data on first use. The flag wins over
// the config file.
func (a *app) loadReference() (*reference.Data, *landed.Calculator, error) {
	if a.calc != nil {
		return a.data, a.calc, nil
	}

	path := a.referencePath
	if path == "" && a.cfg != nil {
		path = a.cfg.Reference.Path
	}
	data, err := hcl.Load(path)
	if err != nil {
		return nil, nil, err
	}
	calc, err := landed.New(data.Constants)
	if err != nil {
		return nil, nil, err
	}

	logging.Debug("reference data ready",
		zap.String("file", path),
		zap.Int("suppliers", data.Catalog.Len()),
		zap.String("usd_to_omr_rate", data.Constants.USDToOMRRate.String()),
	)
	a.data, a.calc = data, calc
	return data, calc, nil
}

func (a *app) colorDisabled() bool {
	if a.noColor {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return a.cfg != nil && !a.cfg.Output.Color
}

func (a *app) outputFormat() (output.Format, error) {
	name := a.format
	if name == "" && a.cfg != nil {
		name = a.cfg.Output.DefaultFormat
	}
	return output.ParseFormat(name)
}

// render writes a report in the selected format. Workbooks are binary
// and only go to files through export.
func (a *app) render(w io.Writer, r *output.Report) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}
	if format.Binary() {
		return errors.Inputf("%s output must go to a file; use export --out", format)
	}
	return output.Render(w, format, a.colorDisabled(), r)
}

func (a *app) warn(cmd *cobra.Command, format string, args ...interface{}) {
	ui.NewWriter(cmd.ErrOrStderr(), a.colorDisabled()).Warning(format, args...)
}

func (a *app) newReport(title string, inputs interface{}) *output.Report {
	return output.NewReport(title, Version, a.data.Constants, inputs)
}

func (a *app) note(cmd *cobra.Command, format string, args ...interface{}) {
	ui.NewWriter(cmd.ErrOrStderr(), a.colorDisabled()).Success(format, args...)
}
