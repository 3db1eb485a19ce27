package types

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Cents is an amount in minor currency units.
type Cents int64

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// CentsFromDecimal converts a major-unit amount, rounding half away from zero.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// Times multiplies the amount by an integer quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// Format renders the amount as a euro price for the given locale, e.g. "69,99 €" in French.
func (c Cents) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%v €", number.Decimal(c.Decimal().InexactFloat64(), number.Scale(2)))
}
