package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	got := FormatPrice(decimal.RequireFromString("1234.5"))
	if got != "₹1234.50" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPriceWithCommas(t *testing.T) {
	cases := map[string]string{
		"0":         "₹0.00",
		"999":       "₹999.00",
		"1000":      "₹1,000.00",
		"123456":    "₹1,23,456.00",
		"1234567.8": "₹12,34,567.80",
		"-45000":    "-₹45,000.00",
	}
	for in, want := range cases {
		if got := FormatPriceWithCommas(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPriceWithCommas(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice(" ₹1,23,456.78 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("123456.78")) {
		t.Fatalf("unexpected value: %s", got)
	}

	if _, err := ParsePrice("₹abc"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestIsValidPrice(t *testing.T) {
	if IsValidPrice(decimal.Zero) || IsValidPrice(decimal.NewFromInt(-1)) {
		t.Fatalf("zero and negative prices must be invalid")
	}
	if !IsValidPrice(decimal.RequireFromString("0.01")) {
		t.Fatalf("positive price must be valid")
	}
}

func TestRoundPrice(t *testing.T) {
	if got := RoundPrice(decimal.RequireFromString("10.005")); !got.Equal(decimal.RequireFromString("10.01")) {
		t.Fatalf("unexpected rounding: %s", got)
	}
}

func TestConvertForPayPal(t *testing.T) {
	amount, code := ConvertForPayPal(decimal.NewFromInt(830), "sandbox")
	if code != USD || !amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("sandbox conversion: got %s %s", amount, code)
	}

	amount, code = ConvertForPayPal(decimal.RequireFromString("499.999"), "live")
	if code != INR || !amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("live conversion: got %s %s", amount, code)
	}
}

func TestPDFPrice(t *testing.T) {
	if got := PDFPrice(decimal.NewFromInt(12)); got != "Rs. 12.00" {
		t.Fatalf("unexpected pdf price: %s", got)
	}
}
