package xlsx

import (
	"bytes"
	"testing"
	"time"

	"doggy-daycare/internal/domain/reports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteOccupancy(t *testing.T) {
	var buf bytes.Buffer
	err := New().WriteOccupancy(&buf, "Sydney CBD", []reports.OccupancyRow{
		{ServiceDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Pets: 3},
		{ServiceDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Pets: 1},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetOccupancy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Location", "Sydney CBD"}, rows[0])
	assert.Equal(t, []string{"Date", "Pets"}, rows[2])
	assert.Equal(t, []string{"2026-03-02", "3"}, rows[3])
	assert.Equal(t, []string{"2026-03-03", "1"}, rows[4])
}

func TestWriteRevenue(t *testing.T) {
	var buf bytes.Buffer
	err := New().WriteRevenue(&buf, reports.Revenue{
		From:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Revenue:      decimal.RequireFromString("99"),
		GSTCollected: decimal.RequireFromString("9"),
		Payments: []reports.MethodTotal{
			{Method: "card", Total: decimal.RequireFromString("22.5")},
			{Method: "deposit", Total: decimal.RequireFromString("5")},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetRevenue, "B3")
	require.NoError(t, err)
	assert.Equal(t, "99", v)

	rows, err := f.GetRows(sheetPayments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"card", "22.5"}, rows[1])
}
