package web

import (
	"html/template"
	"math"
	"strings"
	"time"

	"StockSight/internal/domain/models"
	"StockSight/pkg/util"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// formatPrice renders a price as $1234.57, rounding half away from zero.
func formatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$NaN"
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// formatNumber renders a table value with 6 decimals, or NaN.
func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(v).StringFixed(6)
}

// formatVolume groups thousands: 1,234,567.
func formatVolume(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return numbers.Sprintf("%d", int64(math.Round(v)))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price":  formatPrice,
		"number": formatNumber,
		"volume": formatVolume,
		"date":   func(t time.Time) string { return t.Format(util.DateLayout) },
		"upper":  strings.ToUpper,
		"css":    func(s string) template.CSS { return template.CSS(s) },
		"pngURL": func(b64 string) template.URL { return template.URL("data:image/png;base64," + b64) },
		"bgURL":  func(uri string) template.URL { return template.URL(uri) },
		"arrow":  func(d models.Direction) string { return d.Arrow() },
	}
}
