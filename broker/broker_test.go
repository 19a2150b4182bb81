package broker

import (
	"testing"
	"time"

	"github.com/veluxklf/klf200d/protocol"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New(4)
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(protocol.ErrorNtf{ErrorNumber: protocol.ErrorBusy})

	select {
	case msg := <-ch:
		ntf, ok := msg.(protocol.ErrorNtf)
		if !ok || ntf.ErrorNumber != protocol.ErrorBusy {
			t.Fatalf("got %#v, want ErrorNtf{ErrorBusy}", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New(1)
	ch, unsub := b.Subscribe()
	unsub()

	if _, ok := <-ch; ok {
		t.Fatal("channel not closed after unsubscribe")
	}
	if got := b.SubscriberCount(); got != 0 {
		t.Fatalf("subscriber count = %d, want 0", got)
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := New(1)
	ch, unsub := b.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Publish(protocol.ErrorNtf{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
	<-ch // drain one, just to exercise the channel
}
