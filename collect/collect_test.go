package collect_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/veluxklf/klf200d/collect"
)

// fakeSub is a minimal in-memory Subscriber used to exercise Collect without
// a real gateway connection.
type fakeSub struct {
	mu    sync.Mutex
	queue map[uint16][]chan any
	sent  []collect.Request
	ready chan struct{}
}

func newFakeSub() *fakeSub {
	return &fakeSub{queue: make(map[uint16][]chan any), ready: make(chan struct{})}
}

func (f *fakeSub) Subscribe(commandID uint16) <-chan any {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan any, 1)
	f.queue[commandID] = append(f.queue[commandID], ch)
	return ch
}

func (f *fakeSub) Cancel(commandID uint16, target <-chan any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	waiters := f.queue[commandID]
	for i, ch := range waiters {
		if ch == target {
			f.queue[commandID] = append(waiters[:i], waiters[i+1:]...)
			return
		}
	}
}

func (f *fakeSub) Send(_ context.Context, req collect.Request) (any, error) {
	f.mu.Lock()
	f.sent = append(f.sent, req)
	f.mu.Unlock()
	close(f.ready)
	return nil, nil
}

// deliver pushes v to the oldest still-registered waiter for commandID, as
// gateway.Client's dispatch loop would. It polls briefly, since Collect may
// still be re-subscribing after a non-matching delivery on another command.
func (f *fakeSub) deliver(commandID uint16, v any) {
	for i := 0; i < 2000; i++ {
		f.mu.Lock()
		waiters := f.queue[commandID]
		if len(waiters) > 0 {
			ch := waiters[0]
			f.queue[commandID] = waiters[1:]
			f.mu.Unlock()
			ch <- v
			return
		}
		f.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}

type fakeReq struct{ id uint16 }

func (r fakeReq) CommandID() uint16 { return r.id }

type nodeNtf struct{ id int }
type finishedNtf struct{}

func TestCollectStreamedEnumeration(t *testing.T) {
	sub := newFakeSub()

	resultCh := make(chan []nodeNtf, 1)
	errCh := make(chan error, 1)
	go func() {
		items, err := collect.Collect[nodeNtf](context.Background(), sub, fakeReq{id: 0x0202}, 0x0204, 0x0205, nil)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- items
	}()

	<-sub.ready // wait for Collect to register its waiters and send
	sub.deliver(0x0204, nodeNtf{id: 1})
	sub.deliver(0x0204, nodeNtf{id: 2})
	sub.deliver(0x0205, finishedNtf{})

	select {
	case err := <-errCh:
		t.Fatalf("Collect returned error: %v", err)
	case items := <-resultCh:
		if len(items) != 2 {
			t.Fatalf("got %d items, want 2", len(items))
		}
		if items[0].id != 1 || items[1].id != 2 {
			t.Fatalf("items out of order: %+v", items)
		}
	}

	if len(sub.sent) != 1 || sub.sent[0].CommandID() != 0x0202 {
		t.Fatalf("sent = %+v, want one request for 0x0202", sub.sent)
	}
}

func TestCollectFiltersBySessionMatch(t *testing.T) {
	sub := newFakeSub()

	type sessionNtf struct{ session int }
	match := func(v any) bool {
		n, ok := v.(sessionNtf)
		return ok && n.session == 7
	}

	resultCh := make(chan []sessionNtf, 1)
	go func() {
		items, err := collect.Collect[sessionNtf](context.Background(), sub, fakeReq{id: 0x0300}, 0x0302, 0x0304, match)
		if err != nil {
			t.Errorf("Collect: %v", err)
			return
		}
		resultCh <- items
	}()

	<-sub.ready // wait for Collect to register its waiters and send
	// A notification belonging to a different, concurrently running
	// session must be ignored.
	sub.deliver(0x0304, sessionNtf{session: 99})
	sub.deliver(0x0304, sessionNtf{session: 7})

	items := <-resultCh
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0 (CommandSendReq streams have no item notifications)", len(items))
	}
}
