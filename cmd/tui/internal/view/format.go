package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with grouping separators, e.g. 1234.5
// becomes "1,234.50".
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}
