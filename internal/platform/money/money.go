// Package money concentra la aritmética de importes (2 decimales) y el GST.
package money

import "github.com/shopspring/decimal"

// GSTRate es la tasa fija de GST aplicada a las líneas gravadas.
var GSTRate = decimal.RequireFromString("0.10")

var hundred = decimal.NewFromInt(100)

// Round2 redondea a centavos (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GST calcula round(amount × 10%, 2).
func GST(amount decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(GSTRate))
}

// Discounted aplica un descuento porcentual: round(base × (1 − pct/100), 2).
func Discounted(base, pct decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return Round2(base.Mul(multiplier))
}

// Sum suma una lista de importes sin redondear.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
