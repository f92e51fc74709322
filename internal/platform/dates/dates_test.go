package dates

import (
	"testing"
	"time"

	"doggy-daycare/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant_AcceptsNaiveAndZoned(t *testing.T) {
	want := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2026-03-02T08:00:00",
		"2026-03-02T08:00",
		"2026-03-02 08:00:00",
		"2026-03-02T08:00:00Z",
		"2026-03-02T19:00:00+11:00",
	} {
		got, err := ParseInstant(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s => %s", in, got)
	}

	day, err := ParseInstant("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)
}

func TestDay_Truncates(t *testing.T) {
	in := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Day(in))
}

func TestLocalDay_FollowsLocationZone(t *testing.T) {
	// 14:00 UTC ya es el día siguiente en Sydney (UTC+11 en marzo).
	in := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), LocalDay(in, "Australia/Sydney"))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), LocalDay(in, ""))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), LocalDay(in, "Not/AZone"))
}

func TestFieldHelpers_ReturnValidationErrors(t *testing.T) {
	_, err := DayField("expiry_date", "02/03/2026")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "expiry_date must be YYYY-MM-DD", apperr.Message(err))

	opt, err := OptionalDayField("due_date", "  ")
	require.NoError(t, err)
	assert.Nil(t, opt)

	_, err = InstantField("start_time", "")
	assert.Equal(t, "start_time is required", apperr.Message(err))
}
