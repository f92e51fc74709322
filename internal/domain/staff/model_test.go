package staff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockEntryWorked(t *testing.T) {
	in := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)

	assert.Equal(t, time.Duration(0), ClockEntry{ClockIn: in}.Worked())
	assert.Equal(t, 8*time.Hour+30*time.Minute, ClockEntry{ClockIn: in, ClockOut: &out}.Worked())
}
