// Package collect implements the correlation/stream-collector helper: issue
// one gateway request and harvest the stream of notification frames it
// produces until a terminator notification arrives.
package collect

import (
	"context"
	"fmt"
)

// Subscriber is the subset of gateway.Client that Collect needs. Defined
// here (rather than imported from gateway) to keep this package free of a
// dependency on the client's connection/TLS concerns — it only needs the
// one-shot waiter primitives. Subscribe registers a one-shot waiter that
// delivers exactly one value (or nothing, if Cancel is called first); Send
// registers a waiter for the request's declared confirmation id and writes
// the request to the wire.
type Subscriber interface {
	Subscribe(commandID uint16) <-chan any
	Cancel(commandID uint16, ch <-chan any)
	Send(ctx context.Context, req Request) (any, error)
}

// Request is the minimal shape Collect needs from a gateway request value.
type Request interface {
	CommandID() uint16
}

// Collect issues streamReq, then harvests every itemNtfID frame that
// arrives until terminatorNtfID arrives, returning the accumulated items in
// arrival order. match, if non-nil, filters both items and the terminator —
// used by gateway.Client.SendCommand to discard notifications belonging to
// unrelated, concurrently running sessions.
//
// Each of Subscribe's one-shot waiters fires at most once, so the loop
// re-subscribes after every item and after every non-matching terminator,
// exactly mirroring the fan-out/fan-in design: on item, append and
// re-subscribe for the next one; on terminator, cancel the pending item
// subscription and return.
func Collect[Item any](
	ctx context.Context,
	sub Subscriber,
	streamReq Request,
	itemNtfID, terminatorNtfID uint16,
	match func(any) bool,
) ([]Item, error) {
	termCh := sub.Subscribe(terminatorNtfID)
	itemCh := sub.Subscribe(itemNtfID)

	if _, err := sub.Send(ctx, streamReq); err != nil {
		sub.Cancel(itemNtfID, itemCh)
		sub.Cancel(terminatorNtfID, termCh)
		return nil, fmt.Errorf("collect: send stream request: %w", err)
	}

	var items []Item
	for {
		select {
		case <-ctx.Done():
			sub.Cancel(itemNtfID, itemCh)
			sub.Cancel(terminatorNtfID, termCh)
			return items, ctx.Err()

		case v, ok := <-termCh:
			if !ok {
				return items, fmt.Errorf("collect: terminator subscription closed")
			}
			if match != nil && !match(v) {
				termCh = sub.Subscribe(terminatorNtfID)
				continue
			}
			// An item delivered before the terminator is still collected,
			// even if select picked the terminator first.
			select {
			case v, ok := <-itemCh:
				if ok && (match == nil || match(v)) {
					if item, isItem := v.(Item); isItem {
						items = append(items, item)
					}
				}
			default:
				sub.Cancel(itemNtfID, itemCh)
			}
			return items, nil

		case v, ok := <-itemCh:
			if !ok {
				return items, fmt.Errorf("collect: item subscription closed")
			}
			if match != nil && !match(v) {
				itemCh = sub.Subscribe(itemNtfID)
				continue
			}
			item, ok := v.(Item)
			if !ok {
				return items, fmt.Errorf("collect: unexpected item type %T", v)
			}
			items = append(items, item)
			itemCh = sub.Subscribe(itemNtfID)
		}
	}
}
