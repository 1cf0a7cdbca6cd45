package reference

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"tyre-cost/internal/errors"
)

func TestDefaultConstantsAreValid(t *testing.T) {
	c := DefaultConstants()
	if err := c.Validate(); err != nil {
		t.Fatalf("default constants rejected: %v", err)
	}
	if !c.USDToOMRRate.Equal(decimal.RequireFromString("0.385")) {
		t.Errorf("expected 0.385 exchange rate, got %s", c.USDToOMRRate)
	}
	if c.ContainerCapacity != 230 {
		t.Errorf("expected 230 units per container, got %d", c.ContainerCapacity)
	}
}

func TestConstantsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *EconomicConstants)
		field  string
	}{
		{"zero capacity", func(c *EconomicConstants) { c.ContainerCapacity = 0 }, "container_capacity"},
		{"negative capacity", func(c *EconomicConstants) { c.ContainerCapacity = -5 }, "container_capacity"},
		{"zero exchange rate", func(c *EconomicConstants) { c.USDToOMRRate = decimal.Zero }, "usd_to_omr_rate"},
		{"negative vat", func(c *EconomicConstants) { c.VATRate = decimal.NewFromFloat(-0.05) }, "vat_rate"},
		{"negative duty", func(c *EconomicConstants) { c.CustomsDutyRate = decimal.NewFromFloat(-0.01) }, "customs_duty_rate"},
		{"negative insurance", func(c *EconomicConstants) { c.InsuranceRate = decimal.NewFromFloat(-1) }, "insurance_rate"},
		{"negative freight", func(c *EconomicConstants) { c.OceanFreightUSD = decimal.NewFromInt(-2500) }, "ocean_freight_usd"},
		{"negative clearance", func(c *EconomicConstants) { c.ClearanceHaulageOMR = decimal.NewFromInt(-1) }, "clearance_haulage_omr"},
		{"negative incumbent price", func(c *EconomicConstants) { c.CurrentPriceOMR = decimal.NewFromInt(-115) }, "current_price_omr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConstants()
			tt.mutate(&c)
			err := c.Validate()
			if !errors.IsType(err, errors.TypeConfig) {
				t.Fatalf("expected CONFIG_ERROR, got %v", err)
			}
			if e := err.(*errors.Error); e.Context["field"] != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, e.Context["field"])
			}
		})
	}
}

func TestZeroRatesAreAllowed(t *testing.T) {
	c := DefaultConstants()
	c.VATRate = decimal.Zero
	c.CustomsDutyRate = decimal.Zero
	c.InsuranceRate = decimal.Zero
	if err := c.Validate(); err != nil {
		t.Errorf("zero rates are non-negative and should pass: %v", err)
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	c := DefaultConstants()
	for _, omr := range []string{"0.01", "1", "82.93", "115", "115000", "123456.789"} {
		v := decimal.RequireFromString(omr)
		back := c.ToOMR(c.ToUSD(v))
		diff := back.Sub(v).Abs()
		tolerance := v.Abs().Mul(decimal.New(1, -12))
		if diff.GreaterThan(tolerance) {
			t.Errorf("round trip of %s drifted to %s", omr, back)
		}
	}
}

func TestDefaultFOBIsRoundedMidpoint(t *testing.T) {
	tests := []struct {
		id   string
		want float64
	}{
		{"triangle", 185},
		{"aeolus", 190},
		{"parallel", 155},
	}

	catalog := DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := catalog.Lookup(tt.id)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got := DefaultFOB(s); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDefaultFOBStaysInBand(t *testing.T) {
	bands := [][2]float64{
		{175, 195}, {180.2, 180.4}, {99.5, 100.5}, {0.3, 0.4}, {10, 10}, {149.5, 150.49},
	}
	for _, b := range bands {
		s := SupplierInfo{ID: "x", FOBMin: b[0], FOBMax: b[1], RiskLevel: RiskLow}
		got := DefaultFOB(s)
		if got < s.FOBMin || got > s.FOBMax {
			t.Errorf("band %v: default %v escaped the band", b, got)
		}
		if math.IsNaN(got) {
			t.Errorf("band %v: NaN default", b)
		}
	}
}

func TestClamp(t *testing.T) {
	s := SupplierInfo{ID: "x", FOBMin: 175, FOBMax: 195, RiskLevel: RiskLow}
	if got := Clamp(s, 100); got != 175 {
		t.Errorf("expected lower bound, got %v", got)
	}
	if got := Clamp(s, 500); got != 195 {
		t.Errorf("expected upper bound, got %v", got)
	}
	if got := Clamp(s, 180); got != 180 {
		t.Errorf("expected untouched value, got %v", got)
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 suppliers, got %d", catalog.Len())
	}

	first, ok := catalog.First()
	if !ok || first.ID != "triangle" {
		t.Errorf("expected triangle first, got %q", first.ID)
	}

	_, err := catalog.Lookup("westlake")
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	catalog := DefaultCatalog()
	s, _ := catalog.Lookup("triangle")
	s.Advantages[0] = "tampered"
	s.FOBMin = 1

	again, _ := catalog.Lookup("triangle")
	if again.Advantages[0] == "tampered" {
		t.Error("catalog slice was shared with caller")
	}
	if again.FOBMin != 175 {
		t.Error("catalog value was mutated")
	}

	all := catalog.All()
	all[2].Disadvantages[0] = "tampered"
	parallel, _ := catalog.Lookup("parallel")
	if parallel.Disadvantages[0] == "tampered" {
		t.Error("All() leaked internal slices")
	}
}

func TestNewCatalogRejectsBadSuppliers(t *testing.T) {
	tests := []struct {
		name      string
		suppliers []SupplierInfo
	}{
		{"missing id", []SupplierInfo{{FOBMin: 1, FOBMax: 2, RiskLevel: RiskLow}}},
		{"zero fob", []SupplierInfo{{ID: "a", FOBMin: 0, FOBMax: 2, RiskLevel: RiskLow}}},
		{"nan fob", []SupplierInfo{{ID: "a", FOBMin: math.NaN(), FOBMax: 2, RiskLevel: RiskLow}}},
		{"inverted band", []SupplierInfo{{ID: "a", FOBMin: 5, FOBMax: 2, RiskLevel: RiskLow}}},
		{"unknown risk", []SupplierInfo{{ID: "a", FOBMin: 1, FOBMax: 2, RiskLevel: "extreme"}}},
		{"duplicate id", []SupplierInfo{
			{ID: "a", FOBMin: 1, FOBMax: 2, RiskLevel: RiskLow},
			{ID: "a", FOBMin: 3, FOBMax: 4, RiskLevel: RiskHigh},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.suppliers...)
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestRiskRank(t *testing.T) {
	if !(RiskLow.Rank() < RiskLowMedium.Rank() && RiskLowMedium.Rank() < RiskMedium.Rank() && RiskMedium.Rank() < RiskHigh.Rank()) {
		t.Error("risk levels are not ordered")
	}
	if RiskLevel("unknown").Rank() != -1 {
		t.Error("unknown level should rank -1")
	}
}
