// Package dates normaliza fechas (día calendario en UTC) e instantes
// recibidos como texto ISO-8601.
package dates

import (
	"strings"
	"time"
	_ "time/tzdata" // zonas de las sedes aunque la imagen no traiga tzdata

	"doggy-daycare/internal/platform/apperr"
)

const (
	DayLayout = "2006-01-02"
	// HourMinute es el formato de hora de las plantillas recurrentes.
	HourMinute = "15:04"
)

// Los instantes sin zona se interpretan como UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Day trunca t al día calendario (medianoche UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalDay es el día calendario de t en la zona tz, expresado como
// medianoche UTC para compararlo con las fechas guardadas. Una zona vacía o
// desconocida cae en UTC.
func LocalDay(t time.Time, tz string) time.Time {
	if tz = strings.TrimSpace(tz); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			t = t.In(loc)
		}
	}
	return Day(t)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	// un día suelto vale como medianoche
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, lastErr
}

// DayField parsea un campo obligatorio YYYY-MM-DD.
func DayField(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, apperr.FieldValidation(field, field+" is required")
	}
	t, err := ParseDay(s)
	if err != nil {
		return time.Time{}, apperr.FieldValidation(field, field+" must be YYYY-MM-DD")
	}
	return t, nil
}

// OptionalDayField devuelve nil si el campo viene vacío.
func OptionalDayField(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := DayField(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func InstantField(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, apperr.FieldValidation(field, field+" is required")
	}
	t, err := ParseInstant(s)
	if err != nil {
		return time.Time{}, apperr.FieldValidation(field, field+" must be an ISO-8601 date-time")
	}
	return t, nil
}

func OptionalInstantField(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := InstantField(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
