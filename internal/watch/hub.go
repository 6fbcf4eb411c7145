// Package watch provides a small in-process pub/sub hub used to deliver
// push-based observation streams over the local cache. Every local-store
// mutation that affects a subscribed query re-emits the updated result to
// all active subscribers.
package watch

import (
	"context"
	"sync"
)

// Hub fans values out to subscribers keyed by topic. Each subscriber
// channel holds at most one value: when a subscriber is slow, the stale
// value is replaced so the latest state always wins.
type Hub[T any] struct {
	mu     sync.Mutex
	topics map[string]map[int]chan T
	nextID int
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		topics: make(map[string]map[int]chan T),
	}
}

// Subscribe registers a subscriber for a topic. The returned channel is
// closed, and the subscription removed, when ctx ends. No emissions are
// delivered after the channel closes.
func (h *Hub[T]) Subscribe(ctx context.Context, topic string) <-chan T {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, 1)
	id := h.nextID
	h.nextID++

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[int]chan T)
		h.topics[topic] = subs
	}
	subs[id] = ch

	go func() {
		<-ctx.Done()
		h.unsubscribe(topic, id)
	}()

	return ch
}

// Publish delivers a value to every subscriber of a topic without
// blocking the publisher.
func (h *Hub[T]) Publish(topic string, value T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.topics[topic] {
		// Drop the stale buffered value, if any, then deliver.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- value:
		default:
		}
	}
}

// Forward copies emissions from a hub subscription to a subscriber-facing
// channel with latest-wins semantics, closing out when ctx ends or the
// subscription closes. out must have capacity >= 1 and be written only by
// this function once started.
func Forward[T any](ctx context.Context, in <-chan T, out chan T) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- v:
			default:
				// Replace the stale buffered value.
				select {
				case <-out:
				default:
				}
				select {
				case out <- v:
				default:
				}
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub[T]) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

func (h *Hub[T]) unsubscribe(topic string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	ch, ok := subs[id]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
	close(ch)
}
