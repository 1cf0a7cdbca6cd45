// Package hcl - Safe CTY value conversion
// Constants are read as exact decimals; unknown or null values are
// rejected rather than defaulted.
package hcl

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
)

// ValueError explains why an attribute value cannot be used
type ValueError struct {
	Attribute string
	Reason    string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Attribute, e.Reason)
}

// checkKnown rejects unknown and null values. Unknowns only appear when
// an expression references something the loader does not provide.
func checkKnown(name string, val cty.Value) error {
	if !val.IsKnown() {
		return &ValueError{Attribute: name, Reason: "value is not known"}
	}
	if val.IsNull() {
		return &ValueError{Attribute: name, Reason: "value is null"}
	}
	return nil
}

// toDecimal converts a cty number to a decimal without going through
// float64, so 0.385 stays exactly 0.385.
func toDecimal(name string, val cty.Value) (decimal.Decimal, error) {
	if err := checkKnown(name, val); err != nil {
		return decimal.Zero, err
	}
	if val.Type() != cty.Number {
		return decimal.Zero, &ValueError{
			Attribute: name,
			Reason:    "expected a number, got " + val.Type().FriendlyName(),
		}
	}

	bf := val.AsBigFloat()
	if bf.IsInf() {
		return decimal.Zero, &ValueError{Attribute: name, Reason: "value is infinite"}
	}
	d, err := decimal.NewFromString(bf.Text('f', -1))
	if err != nil {
		return decimal.Zero, &ValueError{Attribute: name, Reason: err.Error()}
	}
	return d, nil
}

// toInt64 converts a cty number that must be a whole number
func toInt64(name string, val cty.Value) (int64, error) {
	if err := checkKnown(name, val); err != nil {
		return 0, err
	}
	if val.Type() != cty.Number {
		return 0, &ValueError{
			Attribute: name,
			Reason:    "expected a number, got " + val.Type().FriendlyName(),
		}
	}

	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return 0, &ValueError{Attribute: name, Reason: "expected a whole number, got " + bf.Text('f', -1)}
	}
	i, acc := bf.Int64()
	if acc != big.Exact {
		return 0, &ValueError{Attribute: name, Reason: "value out of range"}
	}
	return i, nil
}
