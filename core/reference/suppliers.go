package reference

import (
	"math"

	"tyre-cost/core/determinism"
	"tyre-cost/internal/errors"
)

// RiskLevel classifies a sourcing channel
type RiskLevel string

const (
	RiskLow       RiskLevel = "low"
	RiskLowMedium RiskLevel = "low-medium"
	RiskMedium    RiskLevel = "medium"
	RiskHigh      RiskLevel = "high"
)

// Valid reports whether the level is one of the known values
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskLowMedium, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Rank orders risk levels from 0 (low) to 3 (high); unknown is -1
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskLowMedium:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return -1
	}
}

// String returns the string representation
func (r RiskLevel) String() string {
	return string(r)
}

// SupplierInfo describes one sourcing option.
// Only FOBMin and FOBMax feed the calculator, and only through DefaultFOB.
type SupplierInfo struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Model         string    `json:"model" yaml:"model"`
	FOBMin        float64   `json:"fob_min" yaml:"fob_min"`
	FOBMax        float64   `json:"fob_max" yaml:"fob_max"`
	Warranty      string    `json:"warranty" yaml:"warranty"`
	Email         string    `json:"email,omitempty" yaml:"email,omitempty"`
	RiskLevel     RiskLevel `json:"risk_level" yaml:"risk_level"`
	RiskLabel     string    `json:"risk_label,omitempty" yaml:"risk_label,omitempty"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Advantages    []string  `json:"advantages,omitempty" yaml:"advantages,omitempty"`
	Disadvantages []string  `json:"disadvantages,omitempty" yaml:"disadvantages,omitempty"`
}

// Validate checks the supplier's identity and FOB band
func (s SupplierInfo) Validate() error {
	if s.ID == "" {
		return errors.Config("supplier id is required")
	}
	if !(s.FOBMin > 0) || math.IsInf(s.FOBMin, 0) {
		return errors.Configf("supplier %s: fob_min must be a positive number, got %v", s.ID, s.FOBMin)
	}
	if math.IsNaN(s.FOBMax) || math.IsInf(s.FOBMax, 0) || s.FOBMax < s.FOBMin {
		return errors.Configf("supplier %s: fob_max (%v) must be >= fob_min (%v)", s.ID, s.FOBMax, s.FOBMin)
	}
	if !s.RiskLevel.Valid() {
		return errors.Configf("supplier %s: unknown risk level %q", s.ID, s.RiskLevel)
	}
	return nil
}

// IsHighRisk reports whether the channel voids warranty or similar
func (s SupplierInfo) IsHighRisk() bool {
	return s.RiskLevel == RiskHigh
}

func (s SupplierInfo) clone() SupplierInfo {
	c := s
	c.Advantages = append([]string(nil), s.Advantages...)
	c.Disadvantages = append([]string(nil), s.Disadvantages...)
	return c
}

// DefaultFOB is the representative factory price used to seed the
// calculator when a supplier is picked: the rounded band midpoint.
func DefaultFOB(s SupplierInfo) float64 {
	mid := math.Round((s.FOBMin + s.FOBMax) / 2)
	// Rounding can only leave the band when it is narrower than one dollar
	return Clamp(s, mid)
}

// Clamp keeps a user-chosen FOB inside the supplier's band.
// This is a presentation concern; the calculator itself never clamps.
func Clamp(s SupplierInfo, fob float64) float64 {
	if fob < s.FOBMin {
		return s.FOBMin
	}
	if fob > s.FOBMax {
		return s.FOBMax
	}
	return fob
}

// Catalog is an ordered, read-only set of suppliers
type Catalog struct {
	suppliers []SupplierInfo
	byID      map[string]int
}

// NewCatalog validates the suppliers and indexes them by id
func NewCatalog(suppliers ...SupplierInfo) (*Catalog, error) {
	c := &Catalog{
		suppliers: make([]SupplierInfo, 0, len(suppliers)),
		byID:      make(map[string]int, len(suppliers)),
	}
	for _, s := range suppliers {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, errors.Configf("duplicate supplier id %q", s.ID)
		}
		c.byID[s.ID] = len(c.suppliers)
		c.suppliers = append(c.suppliers, s.clone())
	}
	return c, nil
}

// Lookup returns a copy of the supplier with the given id
func (c *Catalog) Lookup(id string) (SupplierInfo, error) {
	idx, ok := c.byID[id]
	if !ok {
		return SupplierInfo{}, errors.NotFound("supplier", id).WithContext("known", c.IDs())
	}
	return c.suppliers[idx].clone(), nil
}

// All returns copies of every supplier in catalog order
func (c *Catalog) All() []SupplierInfo {
	out := make([]SupplierInfo, len(c.suppliers))
	for i, s := range c.suppliers {
		out[i] = s.clone()
	}
	return out
}

// IDs returns supplier ids in sorted order
func (c *Catalog) IDs() []string {
	return determinism.SortedKeys(c.byID)
}

// Len returns the number of suppliers
func (c *Catalog) Len() int {
	return len(c.suppliers)
}

// First returns the first supplier, the dashboard's initial selection
func (c *Catalog) First() (SupplierInfo, bool) {
	if len(c.suppliers) == 0 {
		return SupplierInfo{}, false
	}
	return c.suppliers[0].clone(), true
}

// DefaultSuppliers is the researched supplier list
func DefaultSuppliers() []SupplierInfo {
	return []SupplierInfo{
		{
			ID:          "triangle",
			Name:        "Triangle Tyre",
			Model:       "TR668 / TR691",
			FOBMin:      175,
			FOBMax:      195,
			Warranty:    "Full Factory Warranty",
			Email:       "exports@triangletire.cn",
			RiskLevel:   RiskLowMedium,
			RiskLabel:   "Low-Medium Risk",
			Description: "Fragmented distribution in Oman - no monopolistic blocker. Factory-direct pricing available.",
			Advantages: []string{
				"No exclusive agency barrier in Oman",
				"Full factory warranty coverage",
				"GSO certified models available",
				"Competitive lead times (4-6 weeks production)",
			},
			Disadvantages: []string{
				"MOQ: 1 container (230 units)",
				"Payment: 30% deposit, 70% on B/L",
				"Longer lead time than local",
			},
		},
		{
			ID:          "aeolus",
			Name:        "Aeolus Tyre",
			Model:       "HN08 / HN25",
			FOBMin:      180,
			FOBMax:      200,
			Warranty:    "Full Factory Warranty",
			Email:       "export@aeolustyre.com",
			RiskLevel:   RiskLowMedium,
			RiskLabel:   "Low-Medium Risk",
			Description: "Heavy-duty specialist with superior overload capability. Pirelli technology access via ChemChina.",
			Advantages: []string{
				"Superior overload capability",
				"Heavy-duty specialist (ideal for tankers)",
				"Pirelli technology access",
				"Proven GCC track record",
			},
			Disadvantages: []string{
				"Slightly higher price than Triangle",
				"MOQ: 1 container",
				"Less fragmented distribution",
			},
		},
		{
			ID:          "parallel",
			Name:        "Parallel Import",
			Model:       "Westlake CM998 / Chaoyang",
			FOBMin:      145,
			FOBMax:      165,
			Warranty:    "WARRANTY VOID",
			Email:       "Various trading houses",
			RiskLevel:   RiskHigh,
			RiskLabel:   "High Risk",
			Description: "Grey market sourcing through unauthorized channels. Lowest price but significant risks.",
			Advantages: []string{
				"Lowest unit price",
				"Faster sourcing from traders",
			},
			Disadvantages: []string{
				"WARRANTY VOIDED by manufacturer",
				"Risk of \"doubling\" (bead damage)",
				"Serial numbers may be buffed/altered",
				"No recourse for defects",
				"Catastrophic blowout risk",
				"Potential customs issues",
			},
		},
	}
}

// DefaultCatalog returns the catalog built from DefaultSuppliers
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSuppliers()...)
	if err != nil {
		panic("reference: built-in supplier catalog is invalid: " + err.Error())
	}
	return c
}
