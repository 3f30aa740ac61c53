package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the English way for every number shown to users.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators, e.g. 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f to precision decimals and groups the integer part,
// e.g. FormatFloat(1234.567, 2) -> "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	if precision < 0 {
		precision = 0
	}
	formatted := strconv.FormatFloat(f, 'f', precision, 64)

	intPart, frac, hasFrac := strings.Cut(formatted, ".")
	negative := strings.HasPrefix(intPart, "-")
	n, err := strconv.ParseInt(strings.TrimPrefix(intPart, "-"), 10, 64)
	if err != nil {
		return formatted
	}

	grouped := FormatNumber(n)
	if negative && (n != 0 || strings.Trim(frac, "0") != "") {
		grouped = "-" + grouped
	}
	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}

// FormatLarge abbreviates values of a million or more as "~X.X million" or
// "~X.X billion"; smaller values are grouped integers.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// FormatMass renders a CO2e mass in kg, switching to tonnes with one decimal
// from TonneDisplayThresholdKg upward.
func FormatMass(kg float64) string {
	if math.Abs(kg) >= TonneDisplayThresholdKg {
		return FormatFloat(kg/KgPerTonne, 1) + " t"
	}
	return FormatFloat(kg, 0) + " kg"
}

// FormatSignedPercent renders a whole percentage with an explicit sign for
// positive values, e.g. "+44%", "-3%", "0%".
func FormatSignedPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0%"
	}
	n := int64(math.Round(v))
	if n > 0 {
		return "+" + FormatNumber(n) + "%"
	}
	return FormatNumber(n) + "%"
}
