// Package money renders integer VND amounts for display. Amounts are kept in
// the smallest currency unit everywhere; only the presentation layer formats.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currencyGlyph = "₫"

var printer = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese thousands grouping and the
// trailing đồng glyph, e.g. 199000 -> "199.000₫".
func FormatVND(amount int64) string {
	return printer.Sprint(number.Decimal(amount)) + currencyGlyph
}
