// Package session implements the 16-bit session-id registry used to tag
// multi-step gateway operations (CommandSendReq and its eventual
// SessionFinishedNtf) from allocation through release.
package session

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrNoSessionIDAvailable is returned by Allocate when every one of the
// 65536 session ids is currently in use.
var ErrNoSessionIDAvailable = errors.New("session: no session id available")

// Allocator is a single-owner session-id registry. It is not a process-wide
// singleton: callers hold an explicit *Allocator (gateway.Client owns one)
// and pass it around rather than reaching for global state.
type Allocator struct {
	mu   sync.Mutex
	used map[uint16]struct{}
}

// New creates an empty Allocator.
func New() *Allocator {
	return &Allocator{used: make(map[uint16]struct{})}
}

// Allocate returns an unused session id: 0 when none is in use, otherwise
// max(used)+1 (wrapping to 0 past 65535), or, if that id is itself taken (a
// wraparound collision), a linear scan for the smallest free id. It fails
// with ErrNoSessionIDAvailable only when truly none remain.
func (a *Allocator) Allocate() (uint16, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.used) >= 1<<16 {
		return 0, ErrNoSessionIDAvailable
	}

	var id uint16
	hasMax := false
	for used := range a.used {
		if !hasMax || used > id {
			id = used
			hasMax = true
		}
	}
	if hasMax {
		id++ // wraps to 0 past 65535
	}

	if _, taken := a.used[id]; taken {
		found := false
		for i := 0; i < 1<<16; i++ {
			candidate := uint16(i)
			if _, taken := a.used[candidate]; !taken {
				id = candidate
				found = true
				break
			}
		}
		if !found {
			return 0, ErrNoSessionIDAvailable
		}
	}

	a.used[id] = struct{}{}
	return id, nil
}

// Release removes id from the live set, making it eligible for future
// allocation. Releasing an id that is not currently allocated is tolerated
// (logged, not an error) — notifications can legitimately arrive after a
// local cancellation already released the id.
func (a *Allocator) Release(id uint16) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.used[id]; !ok {
		slog.Warn("session: releasing id not currently allocated", "session_id", id)
		return
	}
	delete(a.used, id)
}

// InUse reports whether id is currently allocated. Exposed for tests and
// for the TUI's session/actuator cross-reference.
func (a *Allocator) InUse(id uint16) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.used[id]
	return ok
}
