package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []EventType
	dispatcher.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	dispatcher.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	_ = dispatcher.Publish(context.Background(), New(EventLoginFailed, "", LoginFailedPayload{Email: "a@x.com", Kind: "INVALID_CREDENTIALS"}))
	_ = dispatcher.Publish(context.Background(), New(EventUserDisabled, "u-1", nil))

	if len(got) != 1 || got[0] != EventLoginFailed {
		t.Fatalf("got %v, want exactly one login_failed", got)
	}
}

func TestDispatcherSurvivesFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), New(EventUserRegistered, "u-1", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if calls != 1 {
		t.Fatalf("second handler ran %d times, want 1", calls)
	}
}
