package postgres

import (
	"context"
	"time"

	"doggy-daycare/internal/domain/crm"
)

type crmRepo struct {
	s *Store
}

const notificationColumns = `id, client_id, channel, template_code, content, status, attributes, created_at`

func scanNotification(row rowScanner) (crm.Notification, error) {
	var n crm.Notification
	var status string
	var a jsonMap
	err := row.Scan(&n.ID, &n.ClientID, &n.Channel, &n.TemplateCode, &n.Content, &status, &a, &n.CreatedAt)
	n.Status = crm.NotificationStatus(status)
	n.Attributes = a
	return n, err
}

func (r *crmRepo) CreateNotification(ctx context.Context, n crm.Notification) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, n.ID, n.ClientID, n.Channel, n.TemplateCode, n.Content, string(n.Status), attrs(n.Attributes), n.CreatedAt)
}

func (r *crmRepo) GetNotification(ctx context.Context, id string) (crm.Notification, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		return crm.Notification{}, mapErr(err)
	}
	return n, nil
}

func (r *crmRepo) ListNotifications(ctx context.Context, clientID string) ([]crm.Notification, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE client_id = $1
		ORDER BY created_at DESC, seq DESC
	`, clientID)
	return collect(rows, err, scanNotification)
}

const messageSelect = `
	SELECT m.id, m.client_id, m.direction, m.channel, m.content,
		m.staff_user_id, m.related_booking_id, m.created_at,
		COALESCE(u.name, ''), COALESCE(c.first_name || ' ' || c.last_name, '')
	FROM messages m
	LEFT JOIN users u ON u.id = m.staff_user_id`

func scanMessage(row rowScanner) (crm.Message, error) {
	var m crm.Message
	var dir string
	err := row.Scan(
		&m.ID, &m.ClientID, &dir, &m.Channel, &m.Content,
		&m.StaffUserID, &m.RelatedBookingID, &m.CreatedAt,
		&m.StaffName, &m.ClientName,
	)
	m.Direction = crm.Direction(dir)
	return m, err
}

func (r *crmRepo) CreateMessage(ctx context.Context, m crm.Message) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO messages (
			id, client_id, direction, channel, content,
			staff_user_id, related_booking_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		m.ID, m.ClientID, string(m.Direction), m.Channel, m.Content,
		m.StaffUserID, m.RelatedBookingID, m.CreatedAt,
	)
}

func (r *crmRepo) GetMessage(ctx context.Context, id string) (crm.Message, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, messageSelect+`
		LEFT JOIN clients c ON c.id = m.client_id
		WHERE m.id = $1
	`, id)
	m, err := scanMessage(row)
	if err != nil {
		return crm.Message{}, mapErr(err)
	}
	return m, nil
}

func (r *crmRepo) ListMessages(ctx context.Context, clientID string) ([]crm.Message, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, messageSelect+`
		LEFT JOIN clients c ON c.id = m.client_id
		WHERE m.client_id = $1
		ORDER BY m.created_at DESC, m.seq DESC
	`, clientID)
	return collect(rows, err, scanMessage)
}

// RecentMessages omite mensajes cuyo cliente ya no existe.
func (r *crmRepo) RecentMessages(ctx context.Context, since time.Time, limit int) ([]crm.Message, error) {
	query := messageSelect + `
		JOIN clients c ON c.id = m.client_id
		WHERE m.created_at >= $1
		ORDER BY m.created_at DESC, m.seq DESC`
	args := []any{since}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.s.q(ctx).QueryContext(ctx, query, args...)
	return collect(rows, err, scanMessage)
}
