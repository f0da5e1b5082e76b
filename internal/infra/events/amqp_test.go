//go:build unit

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	a := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return a.Get(0).(amqp.Queue), a.Error(1)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	a := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return a.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestNewAMQPPublisher(t *testing.T) {
	t.Run("durableキューを宣言", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("QueueDeclare", "seat.events", true, false, false, false, amqp.Table(nil)).
			Return(amqp.Queue{Name: "seat.events"}, nil)

		pub, err := NewAMQPPublisher(ch, "seat.events")
		require.NoError(t, err)
		assert.NotNil(t, pub)
		ch.AssertExpectations(t)
	})

	t.Run("宣言失敗", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(amqp.Queue{}, assert.AnError)

		pub, err := NewAMQPPublisher(ch, "seat.events")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, pub)
	})
}

func TestAMQPPublisher_Publish(t *testing.T) {
	userID := uuid.New()
	until := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	event := shared.SeatEvent{
		Type:          shared.SeatEventReserved,
		SeatNumber:    "W01",
		UserID:        &userID,
		ReservedUntil: &until,
		OccurredAt:    until.Add(-3 * time.Hour),
	}

	t.Run("永続JSONメッセージとして送信", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(amqp.Queue{}, nil)
		ch.On("PublishWithContext", mock.Anything, "", "seat.events", false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
			var got shared.SeatEvent
			if err := json.Unmarshal(msg.Body, &got); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				msg.Type == "seat.reserved" &&
				got.SeatNumber == "W01" &&
				got.UserID != nil && *got.UserID == userID
		})).Return(nil)

		pub, err := NewAMQPPublisher(ch, "seat.events")
		require.NoError(t, err)

		require.NoError(t, pub.Publish(context.Background(), event))
		ch.AssertExpectations(t)
	})

	t.Run("送信失敗はエラーを返す", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(amqp.Queue{}, nil)
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		pub, err := NewAMQPPublisher(ch, "seat.events")
		require.NoError(t, err)

		err = pub.Publish(context.Background(), event)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
