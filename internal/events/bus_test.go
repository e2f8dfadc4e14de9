package events

import (
	"testing"
	"time"

	"github.com/smazurov/kbcontrol/internal/keyboard"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan StateChangedEvent, 1)

	unsub := bus.Subscribe(func(e StateChangedEvent) {
		received <- e
	})
	defer unsub()

	event := StateChangedEvent{
		Command:   "set-mode",
		State:     keyboard.Default(),
		Persisted: true,
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(event)

	select {
	case got := <-received:
		if got.Command != event.Command || got.State != event.State {
			t.Errorf("got %+v, want %+v", got, event)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan FrameWrittenEvent, 1)

	unsub := bus.Subscribe(func(e FrameWrittenEvent) {
		received <- e
	})

	bus.Publish(FrameWrittenEvent{Endpoint: "dynamic"})
	<-received

	unsub()

	bus.Publish(FrameWrittenEvent{Endpoint: "static"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	writeFailed := make(chan bool, 1)
	persistFailed := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(_ WriteFailedEvent) {
		writeFailed <- true
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(_ PersistFailedEvent) {
		persistFailed <- true
	})
	defer unsub2()

	bus.Publish(WriteFailedEvent{Endpoint: "static"})
	<-writeFailed

	select {
	case <-persistFailed:
		t.Fatal("PersistFailedEvent subscriber received WriteFailedEvent")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_UnknownHandler(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()
}

func TestBus_NilPublish(_ *testing.T) {
	var bus *Bus
	bus.Publish(StateChangedEvent{})
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[PersistFailedEvent](bus, ch)
	defer unsub()

	bus.Publish(PersistFailedEvent{Path: "/tmp/state.toml", Error: "read-only file system"})

	select {
	case received := <-ch:
		ev, ok := received.(PersistFailedEvent)
		if !ok {
			t.Fatalf("Expected PersistFailedEvent, got %T", received)
		}
		if ev.Path != "/tmp/state.toml" {
			t.Errorf("Path = %q", ev.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any)

	unsub := SubscribeToChannel[FrameWrittenEvent](bus, ch)
	defer unsub()

	for range 5 {
		bus.Publish(FrameWrittenEvent{Endpoint: "dynamic"})
	}
}

func TestSubscribeToChannel_LogEntries(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)
	unsub := SubscribeToChannel[LogEntryEvent](bus, ch)
	defer unsub()

	bus.Publish(LogEntryEvent{Level: "warn", Module: "store", Message: "Failed to save state"})

	select {
	case got := <-ch:
		entry, ok := got.(LogEntryEvent)
		if !ok || entry.Module != "store" || entry.Level != "warn" {
			t.Errorf("got %#v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("log entry not delivered")
	}
}
