package output

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tyre-cost/core/analysis"
	"tyre-cost/core/determinism"
	"tyre-cost/core/landed"
	"tyre-cost/core/reference"
)

// Report is everything one CLI invocation renders. Sections are
// optional; renderers skip the nil ones.
type Report struct {
	Title     string                      `json:"title" yaml:"title"`
	Metadata  Metadata                    `json:"metadata" yaml:"metadata"`
	Constants reference.EconomicConstants `json:"constants" yaml:"constants"`

	Supplier   *reference.SupplierInfo      `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Breakdown  *landed.CostBreakdown        `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	TargetOMR  *decimal.Decimal             `json:"target_omr,omitempty" yaml:"target_omr,omitempty"`
	Catalog    []reference.SupplierInfo     `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Suppliers  *analysis.SupplierComparison `json:"suppliers,omitempty" yaml:"suppliers,omitempty"`
	Scenarios  *analysis.Scenarios          `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Projection *analysis.Projection         `json:"projection,omitempty" yaml:"projection,omitempty"`
	BreakEvens []*analysis.BreakEven        `json:"break_evens,omitempty" yaml:"break_evens,omitempty"`
	Heatmap    *analysis.Heatmap            `json:"heatmap,omitempty" yaml:"heatmap,omitempty"`
}

// Metadata contains execution context
type Metadata struct {
	// ID uniquely identifies this report
	ID string `json:"id" yaml:"id"`

	// Timestamp is when the report was produced
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Version is the tool version
	Version string `json:"version" yaml:"version"`

	// InputHash fingerprints the inputs and constants; equal hashes mean
	// equal figures
	InputHash string `json:"input_hash" yaml:"input_hash"`
}

// NewReport stamps a report with metadata. inputs is anything
// serializable that identifies the request (flags, ids, prices).
func NewReport(title, version string, constants reference.EconomicConstants, inputs interface{}) *Report {
	return &Report{
		Title: title,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
			InputHash: InputHash(constants, inputs),
		},
		Constants: constants,
	}
}

// InputHash is a sha256 over the constants and the request inputs
func InputHash(constants reference.EconomicConstants, inputs interface{}) string {
	data, _ := json.Marshal(struct {
		Constants reference.EconomicConstants `json:"constants"`
		Inputs    interface{}                 `json:"inputs"`
	}{constants, inputs})
	return determinism.ComputeHash(data).Hex()
}
