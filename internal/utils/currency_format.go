package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatDisplayAmount renders an amount for people: fractional digits are truncated
// and thousands are grouped. Only use it at render time; stored and accumulated
// values keep full precision.
// Example: 1499.99 returns "1,499"
func FormatDisplayAmount(amount decimal.Decimal) string {
	return displayPrinter.Sprintf("%d", amount.Truncate(0).IntPart())
}

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
