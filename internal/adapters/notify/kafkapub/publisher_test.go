package kafkapub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"doggy-daycare/internal/domain/crm"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed int
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed++
	return nil
}

func notification() crm.Notification {
	return crm.Notification{
		ID:           "n-1",
		ClientID:     "c-1",
		Channel:      "email",
		TemplateCode: "booking_confirmation",
		Content:      "Your booking is confirmed",
		Status:       crm.NotificationSent,
		CreatedAt:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestDispatch(t *testing.T) {
	w := &fakeWriter{}
	p := NewWithWriter(w, nil)

	require.NoError(t, p.Dispatch(context.Background(), notification()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "c-1", string(msg.Key))
	assert.Equal(t, []kafka.Header{
		{Key: HeaderChannel, Value: []byte("email")},
		{Key: HeaderTemplate, Value: []byte("booking_confirmation")},
	}, msg.Headers)

	var body crm.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "n-1", body.ID)
}

func TestDispatch_WriterErrorAndClose(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewWithWriter(w, nil)

	err := p.Dispatch(context.Background(), notification())
	assert.ErrorContains(t, err, "broker down")

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)
	assert.ErrorIs(t, p.Dispatch(context.Background(), notification()), ErrClosed)
}

func TestNew_Validates(t *testing.T) {
	_, err := New(Config{Topic: "x"}, nil)
	assert.Error(t, err)
	_, err = New(Config{Brokers: []string{"localhost:9092"}}, nil)
	assert.Error(t, err)

	p, err := New(Config{Brokers: []string{"localhost:9092"}, Topic: "daycare.notifications"}, nil)
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
