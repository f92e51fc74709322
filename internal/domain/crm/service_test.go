package crm

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"doggy-daycare/internal/domain/clients"
	"doggy-daycare/internal/ports/storage"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	notifications map[string]Notification
	messages      map[string]Message
}

func newTestRepo() *testRepo {
	return &testRepo{
		notifications: map[string]Notification{},
		messages:      map[string]Message{},
	}
}

func (r *testRepo) CreateNotification(ctx context.Context, n Notification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *testRepo) GetNotification(ctx context.Context, id string) (Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return Notification{}, storage.ErrNotFound
	}
	return n, nil
}

func (r *testRepo) ListNotifications(ctx context.Context, clientID string) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.notifications {
		if n.ClientID == clientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *testRepo) CreateMessage(ctx context.Context, m Message) error {
	r.messages[m.ID] = m
	return nil
}

func (r *testRepo) GetMessage(ctx context.Context, id string) (Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return Message{}, storage.ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListMessages(ctx context.Context, clientID string) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.messages {
		if m.ClientID == clientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) RecentMessages(ctx context.Context, since time.Time, limit int) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.messages {
		if !m.CreatedAt.Before(since) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type knownClients map[string]clients.Client

func (k knownClients) Get(ctx context.Context, id string) (clients.Client, error) {
	c, ok := k[id]
	if !ok {
		return clients.Client{}, errors.New("client not found")
	}
	return c, nil
}

type dispatchFunc func(ctx context.Context, n Notification) error

func (f dispatchFunc) Dispatch(ctx context.Context, n Notification) error { return f(ctx, n) }

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestService(d Dispatcher) (*Service, *testRepo) {
	repo := newTestRepo()
	cl := knownClients{"client-1": {ID: "client-1", FirstName: "Ana", LastName: "Diaz"}}
	return NewService(repo, cl, d, nil, func() time.Time { return fixedNow }), repo
}

// -------------------------
// Tests
// -------------------------

func TestSendNotification_WithoutDispatcher_IsSent(t *testing.T) {
	svc, _ := newTestService(nil)

	n, err := svc.SendNotification(context.Background(), NotificationInput{
		ClientID:     "client-1",
		Channel:      "email",
		TemplateCode: "booking_reminder",
		Content:      "See you tomorrow",
	})
	if err != nil {
		t.Fatalf("SendNotification error: %v", err)
	}
	if n.Status != NotificationSent {
		t.Fatalf("expected sent, got %s", n.Status)
	}
	if !n.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected CreatedAt to use injected clock")
	}
}

func TestSendNotification_DispatchFailure_RecordsFailed(t *testing.T) {
	var got Notification
	svc, repo := newTestService(dispatchFunc(func(ctx context.Context, n Notification) error {
		got = n
		return errors.New("broker down")
	}))

	n, err := svc.SendNotification(context.Background(), NotificationInput{
		ClientID:     "client-1",
		Channel:      "sms",
		TemplateCode: "vaccination_due",
		Content:      "Rex needs a booster",
	})
	if err != nil {
		t.Fatalf("dispatch failure must not fail the call: %v", err)
	}
	if n.Status != NotificationFailed {
		t.Fatalf("expected failed, got %s", n.Status)
	}
	if got.ID != n.ID {
		t.Fatalf("dispatcher received a different notification")
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("expected notification to be stored, got %d", len(repo.notifications))
	}
}

func TestSendNotification_UnknownClient(t *testing.T) {
	svc, repo := newTestService(nil)

	_, err := svc.SendNotification(context.Background(), NotificationInput{
		ClientID:     "nope",
		Channel:      "email",
		TemplateCode: "x",
		Content:      "y",
	})
	if err == nil {
		t.Fatalf("expected error for unknown client")
	}
	if len(repo.notifications) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestLogMessage_RejectsUnknownDirection(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.LogMessage(context.Background(), MessageInput{
		ClientID:  "client-1",
		Direction: "sideways",
		Channel:   "sms",
		Content:   "hola",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
