package activity

import (
	"context"
	"time"
)

type Repository interface {
	CreateNote(ctx context.Context, n Note) error
	GetNote(ctx context.Context, id string) (Note, error)
	// ListNotes: más recientes primero, con StaffName.
	ListNotes(ctx context.Context, petID string) ([]Note, error)

	CreateLog(ctx context.Context, l Log) error
	GetLog(ctx context.Context, id string) (Log, error)
	ListLogs(ctx context.Context, petID string, filter ListFilter) ([]Log, error)
}

type ListFilter struct {
	Types     []ActivityType
	BookingID string
	From      *time.Time
	To        *time.Time
	Limit     int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// NormalizedLimit aplica default y tope.
func (f ListFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}
