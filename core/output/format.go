package output

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// FormatMoney renders a currency amount with exactly two decimals.
// Display only: the value passed in is never rounded in place.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// FormatMoneyWithUnit appends the currency code
func FormatMoneyWithUnit(v decimal.Decimal, currency string) string {
	return FormatMoney(v) + " " + currency
}

// FormatK abbreviates amounts of 1000 and above (in magnitude) with a
// K suffix and one decimal; smaller amounts are shown without decimals.
func FormatK(v decimal.Decimal) string {
	if v.Abs().GreaterThanOrEqual(thousand) {
		return v.Div(thousand).StringFixed(1) + "K"
	}
	return v.StringFixed(0)
}

// FormatPercent renders a percentage with one decimal
func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(1) + "%"
}

// FormatVolume renders a unit count with thousands separators
func FormatVolume(v float64) string {
	return humanize.Commaf(v)
}

// FormatUSDPrice renders a FOB price such as $180 or $180.50
func FormatUSDPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Equal(d.Truncate(0)) {
		return "$" + d.StringFixed(0)
	}
	return "$" + d.StringFixed(2)
}
