package types

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestCentsDecimalRoundTrip(t *testing.T) {
	if got := Cents(6999).Decimal().String(); got != "69.99" {
		t.Fatalf("expected 69.99, got %s", got)
	}
	if got := CentsFromDecimal(decimal.RequireFromString("10.005")); got != 1001 {
		t.Fatalf("expected half-up rounding to 1001, got %d", got)
	}
	if got := CentsFromDecimal(decimal.RequireFromString("10.004")); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
	if got := Cents(1500).Times(3); got != 4500 {
		t.Fatalf("expected 4500, got %d", got)
	}
}

func TestCentsFormatFrench(t *testing.T) {
	got := Cents(6999).Format(language.French)
	if !strings.Contains(got, "69,99") || !strings.HasSuffix(got, "€") {
		t.Fatalf("unexpected french rendering %q", got)
	}
	got = Cents(5000).Format(language.English)
	if !strings.Contains(got, "50.00") {
		t.Fatalf("unexpected english rendering %q", got)
	}
}
