package billing

import (
	"doggy-daycare/internal/platform/money"

	"github.com/shopspring/decimal"
)

// Line es una línea a facturar antes de persistirse.
type Line struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Taxable     bool
}

func (l Line) amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals de una factura. Cada agregado se redondea por separado.
type Totals struct {
	Subtotal decimal.Decimal
	Taxable  decimal.Decimal
	GST      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals: gst = round(gravado × 10%, 2), total = round(subtotal + gst, 2).
func ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	for _, l := range lines {
		amt := l.amount()
		subtotal = subtotal.Add(amt)
		if l.Taxable {
			taxable = taxable.Add(amt)
		}
	}
	gst := money.GST(taxable)
	return Totals{
		Subtotal: money.Round2(subtotal),
		Taxable:  taxable,
		GST:      gst,
		Total:    money.Round2(subtotal.Add(gst)),
	}
}

func lineItem(invoiceID, id string, l Line) LineItem {
	rate := decimal.Zero
	if l.Taxable {
		rate = money.GSTRate
	}
	return LineItem{
		ID:          id,
		InvoiceID:   invoiceID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   money.Round2(l.UnitPrice),
		GSTRate:     rate,
		Total:       money.Round2(l.amount()),
	}
}
