package postgres

import (
	"context"
	"fmt"
	"strings"

	"doggy-daycare/internal/domain/activity"
)

type activityRepo struct {
	s *Store
}

const noteColumns = `n.id, n.pet_id, n.note, n.flag_type, n.severity, n.created_by, n.created_at, COALESCE(u.name, '')`

func scanNote(row rowScanner) (activity.Note, error) {
	var n activity.Note
	var flag, severity string
	err := row.Scan(&n.ID, &n.PetID, &n.Note, &flag, &severity, &n.CreatedBy, &n.CreatedAt, &n.StaffName)
	n.FlagType, n.Severity = activity.FlagType(flag), activity.Severity(severity)
	return n, err
}

func (r *activityRepo) CreateNote(ctx context.Context, n activity.Note) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO pet_notes (id, pet_id, note, flag_type, severity, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, n.ID, n.PetID, n.Note, string(n.FlagType), string(n.Severity), n.CreatedBy, n.CreatedAt)
}

func (r *activityRepo) GetNote(ctx context.Context, id string) (activity.Note, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT `+noteColumns+`
		FROM pet_notes n
		LEFT JOIN users u ON u.id = n.created_by
		WHERE n.id = $1
	`, id)
	n, err := scanNote(row)
	if err != nil {
		return activity.Note{}, mapErr(err)
	}
	return n, nil
}

func (r *activityRepo) ListNotes(ctx context.Context, petID string) ([]activity.Note, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM pet_notes n
		LEFT JOIN users u ON u.id = n.created_by
		WHERE n.pet_id = $1
		ORDER BY n.created_at DESC, n.seq DESC
	`, petID)
	return collect(rows, err, scanNote)
}

const logColumns = `l.id, l.pet_id, l.booking_id, l.activity_type, l.details, l.logged_by, l.created_at, COALESCE(u.name, '')`

func scanLog(row rowScanner) (activity.Log, error) {
	var l activity.Log
	var typ string
	err := row.Scan(&l.ID, &l.PetID, &l.BookingID, &typ, &l.Details, &l.LoggedBy, &l.CreatedAt, &l.StaffName)
	l.ActivityType = activity.ActivityType(typ)
	return l, err
}

func (r *activityRepo) CreateLog(ctx context.Context, l activity.Log) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO activity_logs (id, pet_id, booking_id, activity_type, details, logged_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, l.ID, l.PetID, l.BookingID, string(l.ActivityType), l.Details, l.LoggedBy, l.CreatedAt)
}

func (r *activityRepo) GetLog(ctx context.Context, id string) (activity.Log, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `
		SELECT `+logColumns+`
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.logged_by
		WHERE l.id = $1
	`, id)
	l, err := scanLog(row)
	if err != nil {
		return activity.Log{}, mapErr(err)
	}
	return l, nil
}

func (r *activityRepo) ListLogs(ctx context.Context, petID string, filter activity.ListFilter) ([]activity.Log, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + logColumns + `
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.logged_by
		WHERE l.pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND l.activity_type IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.BookingID != "" {
		sb.WriteString(fmt.Sprintf(" AND l.booking_id = $%d", argN))
		args = append(args, filter.BookingID)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND l.created_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND l.created_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY l.created_at DESC, l.seq DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, filter.NormalizedLimit())

	rows, err := r.s.q(ctx).QueryContext(ctx, sb.String(), args...)
	return collect(rows, err, scanLog)
}
