package crm

import (
	"context"
	"time"
)

type Repository interface {
	CreateNotification(ctx context.Context, n Notification) error
	GetNotification(ctx context.Context, id string) (Notification, error)
	// ListNotifications: más recientes primero.
	ListNotifications(ctx context.Context, clientID string) ([]Notification, error)

	CreateMessage(ctx context.Context, m Message) error
	GetMessage(ctx context.Context, id string) (Message, error)
	// ListMessages: más recientes primero, con nombre del staff.
	ListMessages(ctx context.Context, clientID string) ([]Message, error)
	// RecentMessages: mensajes desde since, más recientes primero, con nombre del cliente.
	RecentMessages(ctx context.Context, since time.Time, limit int) ([]Message, error)
}
