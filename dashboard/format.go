package dashboard

import (
	"fmt"
	"math"

	"github.com/rustyeddy/pricedash/dataset"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders a cohort total: euro amounts with two decimals for
// revenue and margin, a plain integer count for quantity.
func FormatAmount(m dataset.Measure, v float64) string {
	if m.Currency() {
		return FormatEuro(v)
	}
	return FormatCount(v)
}

// FormatEuro groups thousands and keeps the sign after the symbol, as in
// "€-5.00".
func FormatEuro(v float64) string {
	return printer.Sprintf("€%.2f", dataset.Round2(v))
}

// FormatCount groups thousands of v rounded to an integer, ties to even.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%d", int64(math.RoundToEven(v)))
}

// FormatPct never groups thousands.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatStat renders a summary statistic, with a dash for missing values.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "–"
	}
	return printer.Sprintf("%.2f", v)
}
