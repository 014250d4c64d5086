// Package currency formats and converts storefront prices. Prices are stored
// in INR.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Symbol = "₹"
	INR    = "INR"
	USD    = "USD"
)

// inrPerUSD is the fixed sandbox conversion rate used for PayPal.
var inrPerUSD = decimal.NewFromInt(83)

func FormatPrice(price decimal.Decimal) string {
	return Symbol + price.StringFixed(2)
}

// FormatPriceWithCommas groups digits the Indian way: 12,34,567.89.
func FormatPriceWithCommas(price decimal.Decimal) string {
	s := price.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	sign := ""
	if price.IsNegative() {
		sign = "-"
	}
	return sign + Symbol + grouped + "." + frac
}

func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(Symbol, "", ",", "").Replace(strings.TrimSpace(s))
	return decimal.NewFromString(strings.TrimSpace(cleaned))
}

func IsValidPrice(price decimal.Decimal) bool {
	return price.IsPositive()
}

func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(2)
}

// ConvertForPayPal returns the amount and currency code to send to PayPal.
// The sandbox only settles USD, so INR amounts are converted there.
func ConvertForPayPal(price decimal.Decimal, environment string) (decimal.Decimal, string) {
	if environment == "live" {
		return price.Round(2), INR
	}
	return price.Div(inrPerUSD).Round(2), USD
}

// PDFPrice avoids the rupee sign, which the core PDF fonts cannot render.
func PDFPrice(price decimal.Decimal) string {
	return "Rs. " + price.StringFixed(2)
}
