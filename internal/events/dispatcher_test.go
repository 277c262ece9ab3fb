package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	called := false
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: "other"}))
	assert.False(t, called)
}

func TestPublishReportsHandlerErrorsAndContinues(t *testing.T) {
	var reported []error
	d := NewInMemoryDispatcher(func(_ Event, err error) { reported = append(reported, err) })

	boom := errors.New("smtp down")
	secondRan := false
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error { return boom })
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}))
	assert.True(t, secondRan)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
}
