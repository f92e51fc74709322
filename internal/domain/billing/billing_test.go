package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_OnlyTaxableLinesCarryGST(t *testing.T) {
	totals := ComputeTotals([]Line{
		{Description: "Daycare - Rex", Quantity: 1, UnitPrice: dec("60"), Taxable: true},
		{Description: "Daycare - Luna", Quantity: 1, UnitPrice: dec("54"), Taxable: true},
		{Description: "Bath", Quantity: 2, UnitPrice: dec("12.50"), Taxable: false},
	})

	assert.True(t, totals.Subtotal.Equal(dec("139")), totals.Subtotal.String())
	assert.True(t, totals.GST.Equal(dec("11.4")), totals.GST.String())
	assert.True(t, totals.Total.Equal(dec("150.4")), totals.Total.String())
}

func TestComputeTotals_RoundsGSTToCents(t *testing.T) {
	totals := ComputeTotals([]Line{
		{Quantity: 1, UnitPrice: dec("33.33"), Taxable: true},
	})
	assert.True(t, totals.GST.Equal(dec("3.33")), totals.GST.String())
	assert.True(t, totals.Total.Equal(dec("36.66")), totals.Total.String())
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Total.IsZero())
}

func TestLineItem_RateFollowsTaxable(t *testing.T) {
	li := lineItem("inv", "li", Line{Quantity: 3, UnitPrice: dec("10"), Taxable: true})
	assert.True(t, li.GSTRate.Equal(dec("0.10")))
	assert.True(t, li.Total.Equal(dec("30")))

	li = lineItem("inv", "li", Line{Quantity: 1, UnitPrice: dec("10")})
	assert.True(t, li.GSTRate.IsZero())
}

func TestApplyPayment(t *testing.T) {
	bal, st := applyPayment(dec("100"), StatusIssued, dec("40"))
	assert.True(t, bal.Equal(dec("60")))
	assert.Equal(t, StatusIssued, st)

	bal, st = applyPayment(bal, st, dec("60"))
	assert.True(t, bal.IsZero())
	assert.Equal(t, StatusPaid, st)

	// Sobrepago: saldo negativo, sigue pagada.
	bal, st = applyPayment(dec("10"), StatusIssued, dec("15.5"))
	assert.True(t, bal.Equal(dec("-5.5")))
	assert.Equal(t, StatusPaid, st)
}
