package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	err := bus.PublishJSON(EventBookingCreated, BookingEventPayload{
		BookingID: 7,
		ItemID:    3,
		BookerID:  2,
		OwnerID:   1,
		Status:    "WAITING",
		Start:     start,
		End:       start.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, callCount)
	require.NotNil(t, received)
	assert.Equal(t, EventBookingCreated, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	payload, err := DecodeBooking(received)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.BookingID)
	assert.Equal(t, "WAITING", payload.Status)
	assert.True(t, payload.Start.Equal(start))
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return nil })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	require.NoError(t, bus.Publish(&Event{Type: "event"}))

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestEventBusHandlerError(t *testing.T) {
	bus := NewEventBus()
	var secondCalled bool

	bus.Subscribe("event", func(_ *Event) error { return errors.New("first failed") })
	bus.Subscribe("event", func(_ *Event) error { secondCalled = true; return nil })

	err := bus.Publish(&Event{Type: "event"})
	assert.EqualError(t, err, "first failed")
	assert.True(t, secondCalled)
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.Publish(&Event{Type: "unknown"}))
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON(EventBookingApproved, nil))
}

func TestNewJSONEvent(t *testing.T) {
	event, err := NewJSONEvent("type", BookingEventPayload{BookingID: 123})
	require.NoError(t, err)

	assert.Equal(t, "type", event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	decoded, err := DecodeBooking(&event)
	require.NoError(t, err)
	assert.Equal(t, int64(123), decoded.BookingID)
}

func TestBookingEventTypes(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{EventBookingCreated, EventBookingApproved, EventBookingRejected},
		BookingEventTypes())
}
