package crm

import (
	"context"
	"errors"
	"strings"
	"time"

	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/platform/apperr"
	"doggy-daycare/internal/platform/logger"
	"doggy-daycare/internal/platform/validation"
	"doggy-daycare/internal/ports/storage"

	"github.com/google/uuid"
)

// Dispatcher entrega la notificación por el canal externo (kafka, etc).
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

type Clients interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

type Service struct {
	repo       Repository
	clients    Clients
	dispatcher Dispatcher
	log        logger.Logger
	now        func() time.Time
}

// NewService: dispatcher nil => las notificaciones solo se registran.
func NewService(repo Repository, cl Clients, d Dispatcher, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		clients:    cl,
		dispatcher: d,
		log:        log,
		now:        now,
	}
}

type NotificationInput struct {
	ClientID     string            `json:"client_id" validate:"notblank"`
	Channel      string            `json:"channel" validate:"notblank"`
	TemplateCode string            `json:"template_code" validate:"notblank"`
	Content      string            `json:"content" validate:"notblank"`
	Attributes   map[string]string `json:"attributes"`
}

// SendNotification despacha y registra la notificación. Un fallo del canal
// no es error del caso de uso: queda registrada como failed.
func (s *Service) SendNotification(ctx context.Context, in NotificationInput) (Notification, error) {
	if err := validation.Struct(in); err != nil {
		return Notification{}, err
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return Notification{}, err
	}

	attrs := make(map[string]string, len(in.Attributes))
	for k, v := range in.Attributes {
		attrs[k] = v
	}
	n := Notification{
		ID:           uuid.NewString(),
		ClientID:     strings.TrimSpace(in.ClientID),
		Channel:      strings.TrimSpace(in.Channel),
		TemplateCode: strings.TrimSpace(in.TemplateCode),
		Content:      in.Content,
		Status:       NotificationSent,
		Attributes:   attrs,
		CreatedAt:    s.now().UTC(),
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			n.Status = NotificationFailed
			s.log.Warn("notification dispatch failed", map[string]any{
				"notification_id": n.ID,
				"channel":         n.Channel,
				"err":             err,
			})
		}
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return Notification{}, err
	}
	return s.repo.GetNotification(ctx, n.ID)
}

func (s *Service) ListNotifications(ctx context.Context, clientID string) ([]Notification, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListNotifications(ctx, strings.TrimSpace(clientID))
}

type MessageInput struct {
	ClientID         string    `json:"client_id" validate:"notblank"`
	Direction        Direction `json:"direction" validate:"oneof=inbound outbound"`
	Channel          string    `json:"channel" validate:"notblank"`
	Content          string    `json:"content" validate:"notblank"`
	StaffUserID      *string   `json:"staff_user_id"`
	RelatedBookingID *string   `json:"related_booking_id"`
}

func (s *Service) LogMessage(ctx context.Context, in MessageInput) (Message, error) {
	if err := validation.Struct(in); err != nil {
		return Message{}, err
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return Message{}, err
	}

	m := Message{
		ID:               uuid.NewString(),
		ClientID:         strings.TrimSpace(in.ClientID),
		Direction:        in.Direction,
		Channel:          strings.TrimSpace(in.Channel),
		Content:          in.Content,
		StaffUserID:      optional(in.StaffUserID),
		RelatedBookingID: optional(in.RelatedBookingID),
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return Message{}, err
	}
	out, err := s.repo.GetMessage(ctx, m.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Message{}, apperr.NotFound("Message")
		}
		return Message{}, err
	}
	return out, nil
}

func (s *Service) ListMessages(ctx context.Context, clientID string) ([]Message, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, strings.TrimSpace(clientID))
}

// RecentMessages alimenta el dashboard.
func (s *Service) RecentMessages(ctx context.Context, since time.Time, limit int) ([]Message, error) {
	return s.repo.RecentMessages(ctx, since.UTC(), limit)
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
