// Package export serialises computed rows for download: a flat comma-separated
// document with an assumptions footer, and a JSON document for API clients.
package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/binderlca/internal/engine"
)

// DefaultFilename is the suggested name for a delimited export.
const DefaultFilename = "binderlca-comparison.csv"

// ContentType is the MIME type of the delimited export.
const ContentType = "text/csv; charset=utf-8"

// Header lists the exported columns in order.
//
//nolint:gochecknoglobals // Fixed column order.
var Header = []string{
	"Cement",
	"Strength",
	"Clinker%",
	"EF (kgCO2/kg)",
	"Dosage (kg/m3)",
	"A1-A3 (kg/m3)",
	"A4 (kg)",
	"Total element (kg)",
	"Delta vs baseline (%)",
}

const (
	delimiter = ","
	newline   = "\n"
)

// Format renders rows and the assumptions footer as one document.
func Format(rows []engine.Row, in engine.DesignInputs) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = Write(&b, rows, in)
	return b.String()
}

// Write streams the document to w. Row content never causes an error; only
// failures of w are returned.
func Write(w io.Writer, rows []engine.Row, in engine.DesignInputs) error {
	if _, err := io.WriteString(w, strings.Join(Header, delimiter)+newline); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, r := range rows {
		if _, err := io.WriteString(w, Line(r)+newline); err != nil {
			return fmt.Errorf("writing export row %s: %w", r.ID(), err)
		}
	}
	if _, err := io.WriteString(w, newline+Assumptions(in)+newline); err != nil {
		return fmt.Errorf("writing export footer: %w", err)
	}
	return nil
}

// Line renders one row without a trailing newline.
func Line(r engine.Row) string {
	fields := []string{
		Sanitize(r.Material.Name),
		Sanitize(r.Material.StrengthClass),
		whole(r.Material.ClinkerFraction * 100),
		strconv.FormatFloat(finite(r.Material.EF), 'f', 3, 64),
		whole(r.Dosage),
		whole(r.PerM3),
		whole(r.A4),
		whole(r.Total),
		SignedPercent(r.Reduction),
	}
	return strings.Join(fields, delimiter)
}

// Assumptions renders the design inputs as the footer line.
func Assumptions(in engine.DesignInputs) string {
	in = in.Normalized()
	return fmt.Sprintf(
		"Inputs: volume=%sm3; exposure=%s; distance=%skm; includeA4=%t; dosageMode=%s; globalDosage=%s",
		number(in.VolumeM3),
		Sanitize(in.ExposureClass),
		number(in.DistanceKm),
		in.IncludeA4,
		in.Policy,
		number(finite(in.GlobalDosage)),
	)
}

// Sanitize keeps free text on one line and out of the delimiter: line breaks
// become spaces and commas become semicolons.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.NewReplacer("\r", " ", "\n", " ", delimiter, ";").Replace(s)
	return s
}

// SignedPercent rounds to a whole number and prefixes positive values with "+".
func SignedPercent(v float64) string {
	n := math.Round(finite(v))
	switch {
	case n > 0:
		return "+" + strconv.FormatFloat(n, 'f', 0, 64)
	case n < 0:
		return strconv.FormatFloat(n, 'f', 0, 64)
	default:
		return "0"
	}
}

func whole(v float64) string {
	n := math.Round(finite(v))
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', 0, 64)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
