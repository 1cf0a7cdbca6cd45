// Package hcl loads reference data (economic constants and the supplier
// catalog) from an HCL document.
//
//	constants {
//	  usd_to_omr_rate    = 0.385
//	  container_capacity = 230
//	}
//
//	supplier "triangle" {
//	  name       = "Triangle Tyre"
//	  fob_min    = 175
//	  fob_max    = 195
//	  risk_level = "low-medium"
//	}
//
// Constants left out keep their defaults. Any supplier block replaces
// the built-in catalog as a whole.
package hcl

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tyre-cost/core/determinism"
	"tyre-cost/core/reference"
	"tyre-cost/internal/errors"
	"tyre-cost/internal/logging"
)

var documentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "constants"},
		{Type: "supplier", LabelNames: []string{"id"}},
	},
}

// supplierBody is the body of a supplier block; the id is its label
type supplierBody struct {
	Name          string   `hcl:"name"`
	Model         string   `hcl:"model,optional"`
	FOBMin        float64  `hcl:"fob_min"`
	FOBMax        float64  `hcl:"fob_max"`
	Warranty      string   `hcl:"warranty,optional"`
	Email         string   `hcl:"email,optional"`
	RiskLevel     string   `hcl:"risk_level"`
	RiskLabel     string   `hcl:"risk_label,optional"`
	Description   string   `hcl:"description,optional"`
	Advantages    []string `hcl:"advantages,optional"`
	Disadvantages []string `hcl:"disadvantages,optional"`
}

type decimalField func(*reference.EconomicConstants, decimal.Decimal)

var decimalFields = map[string]decimalField{
	"usd_to_omr_rate":       func(c *reference.EconomicConstants, v decimal.Decimal) { c.USDToOMRRate = v },
	"current_price_omr":     func(c *reference.EconomicConstants, v decimal.Decimal) { c.CurrentPriceOMR = v },
	"ocean_freight_usd":     func(c *reference.EconomicConstants, v decimal.Decimal) { c.OceanFreightUSD = v },
	"clearance_haulage_omr": func(c *reference.EconomicConstants, v decimal.Decimal) { c.ClearanceHaulageOMR = v },
	"customs_duty_rate":     func(c *reference.EconomicConstants, v decimal.Decimal) { c.CustomsDutyRate = v },
	"vat_rate":              func(c *reference.EconomicConstants, v decimal.Decimal) { c.VATRate = v },
	"insurance_rate":        func(c *reference.EconomicConstants, v decimal.Decimal) { c.InsuranceRate = v },
}

const containerCapacityField = "container_capacity"

// Loader parses reference documents
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{logger: logging.Logger}
}

// Load returns the built-in reference data when path is empty and the
// parsed file otherwise
func Load(path string) (*reference.Data, error) {
	if path == "" {
		return reference.Default(), nil
	}
	return NewLoader().LoadFile(path)
}

// LoadFile reads and parses the document at path
func (l *Loader) LoadFile(path string) (*reference.Data, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("reference file", path)
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read reference file", err).
			WithContext("file", path)
	}
	return l.Parse(src, path)
}

// Parse parses src; filename is only used in diagnostics
func (l *Loader) Parse(src []byte, filename string) (*reference.Data, error) {
	// hclparse caches by filename, so each parse gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	content, diags := file.Body.Content(documentSchema)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	data := &reference.Data{Constants: reference.DefaultConstants()}
	var suppliers []reference.SupplierInfo
	seenConstants := false

	for _, block := range content.Blocks {
		switch block.Type {
		case "constants":
			if seenConstants {
				return nil, errors.Parsing("duplicate constants block", nil).
					WithContext("file", filename).
					WithContext("line", block.DefRange.Start.Line)
			}
			seenConstants = true
			if err := l.decodeConstants(block, filename, &data.Constants); err != nil {
				return nil, err
			}

		case "supplier":
			s, err := l.decodeSupplier(block, filename)
			if err != nil {
				return nil, err
			}
			suppliers = append(suppliers, s)
		}
	}

	if err := data.Constants.Validate(); err != nil {
		return nil, addFile(err, filename)
	}

	if len(suppliers) > 0 {
		catalog, err := reference.NewCatalog(suppliers...)
		if err != nil {
			return nil, addFile(err, filename)
		}
		data.Catalog = catalog
	} else {
		data.Catalog = reference.DefaultCatalog()
	}

	l.logger.Debug("loaded reference data",
		zap.String("file", filename),
		zap.Bool("constants", seenConstants),
		zap.Int("suppliers", data.Catalog.Len()),
		zap.Bool("default_catalog", len(suppliers) == 0),
	)
	return data, nil
}

func (l *Loader) decodeConstants(block *hcl.Block, filename string, c *reference.EconomicConstants) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return diagnosticsError(filename, diags)
	}

	for _, name := range determinism.SortedKeys(attrs) {
		attr := attrs[name]
		line := attr.Range.Start.Line

		set, known := decimalFields[name]
		if !known && name != containerCapacityField {
			return errors.Configf("unknown constant %q", name).
				WithContext("file", filename).
				WithContext("line", line)
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diagnosticsError(filename, diags)
		}

		if name == containerCapacityField {
			n, err := toInt64(name, val)
			if err != nil {
				return valueError(err, filename, line)
			}
			c.ContainerCapacity = n
			continue
		}

		d, err := toDecimal(name, val)
		if err != nil {
			return valueError(err, filename, line)
		}
		set(c, d)
		l.logger.Debug("constant override", zap.String("name", name), zap.String("value", d.String()))
	}
	return nil
}

func (l *Loader) decodeSupplier(block *hcl.Block, filename string) (reference.SupplierInfo, error) {
	var body supplierBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return reference.SupplierInfo{}, diagnosticsError(filename, diags)
	}

	s := reference.SupplierInfo{
		ID:            block.Labels[0],
		Name:          body.Name,
		Model:         body.Model,
		FOBMin:        body.FOBMin,
		FOBMax:        body.FOBMax,
		Warranty:      body.Warranty,
		Email:         body.Email,
		RiskLevel:     reference.RiskLevel(body.RiskLevel),
		RiskLabel:     body.RiskLabel,
		Description:   body.Description,
		Advantages:    body.Advantages,
		Disadvantages: body.Disadvantages,
	}
	if s.RiskLabel == "" {
		s.RiskLabel = s.RiskLevel.String()
	}
	if err := s.Validate(); err != nil {
		return reference.SupplierInfo{}, addFile(err, filename).
			WithContext("line", block.DefRange.Start.Line)
	}
	return s, nil
}

// diagnosticsError turns the first error diagnostic into a parsing error
// that carries its position
func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		e := errors.Parsing(diag.Summary+": "+diag.Detail, diags).WithContext("file", filename)
		if diag.Subject != nil {
			e = e.WithContext("line", diag.Subject.Start.Line)
		}
		return e
	}
	return errors.Parsing("invalid reference document", diags).WithContext("file", filename)
}

func valueError(err error, filename string, line int) error {
	return errors.Wrap(errors.TypeConfig, "invalid constant", err).
		WithContext("file", filename).
		WithContext("line", line)
}

func addFile(err error, filename string) *errors.Error {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.WithContext("file", filename)
	}
	return errors.Wrap(errors.TypeConfig, "invalid reference data", err).WithContext("file", filename)
}
