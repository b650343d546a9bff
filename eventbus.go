package ecs

import (
	"reflect"
	"sort"
)

// EventHandler is a subscriber callback (C11 Event Bus, spec §4.11). World
// uses one EventBus per topic ("start", "stop", "createTable" — spec §6)
// rather than a single multiplexed bus keyed by event name, since every use
// site in this core subscribes to exactly one topic at a time.
type EventHandler func(args ...any)

// SubscriptionID identifies one SubscribeUnique call for later removal via
// UnsubscribeID. Unlike a func code pointer, two SubscriptionIDs are never
// equal just because the closures they name were produced by the same func
// literal — each call to SubscribeUnique gets its own.
type SubscriptionID int64

type eventSubscriber struct {
	handler  EventHandler
	key      uintptr
	id       SubscriptionID
	priority int
	seq      int
}

// EventBus is a prioritised, de-duplicated subscriber list (C11). Grounded
// on edwinsyarief-lazyecs's eventbus.go (a type-keyed handler table), but
// restructured to a single ordered list per topic with explicit priority,
// since neither the teacher nor the rest of the retrieval pack ships a
// third-party pub/sub library — this is recorded in DESIGN.md as a
// standard-library concern by necessity, not an oversight.
type EventBus struct {
	subscribers []eventSubscriber
	nextSeq     int
	nextID      SubscriptionID
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// handlerKey identifies a callback for the public Subscribe/Unsubscribe
// de-duplication contract (spec T7: "subscribe(cb); subscribe(cb)" against
// the *same* cb value yields one subscriber). Go function values are not
// comparable with ==, so the underlying code pointer is used instead — the
// same reflect-based dispatch idiom the retrieval pack uses elsewhere for
// type-keyed registries. Note this only identifies the func literal a
// closure was built from, not the closure instance itself (distinct
// closures over the same literal collide); callers that mint a fresh
// closure per subscription (e.g. Query) must use SubscribeUnique instead.
func handlerKey(cb EventHandler) uintptr {
	return reflect.ValueOf(cb).Pointer()
}

// Subscribe registers cb at the given priority (default 0, ascending order
// = earlier invocation). Re-subscribing the same callback updates its
// priority in place and re-sorts rather than adding a second entry (spec
// T7 "event de-duplication"). Returns the bus so calls can be chained,
// matching spec §4.11's chaining requirement.
func (b *EventBus) Subscribe(cb EventHandler, priority ...int) *EventBus {
	p := 0
	if len(priority) > 0 {
		p = priority[0]
	}
	key := handlerKey(cb)
	for i := range b.subscribers {
		if b.subscribers[i].key == key {
			if b.subscribers[i].priority != p {
				b.subscribers[i].priority = p
				b.resort()
			}
			return b
		}
	}
	b.nextID++
	b.subscribers = append(b.subscribers, eventSubscriber{
		handler:  cb,
		key:      key,
		id:       b.nextID,
		priority: p,
		seq:      b.nextSeq,
	})
	b.nextSeq++
	b.resort()
	return b
}

// SubscribeUnique registers cb as its own subscriber regardless of which
// func literal it closes over, returning a token that identifies this call
// (and only this call) for later removal via UnsubscribeID. Internal
// collaborators that mint a fresh closure per subscription (one per Query
// instance, all closing over the same literal in newQuery) use this instead
// of Subscribe, since handlerKey's code-pointer identity would otherwise
// collide every such closure into a single subscriber.
func (b *EventBus) SubscribeUnique(cb EventHandler, priority ...int) SubscriptionID {
	p := 0
	if len(priority) > 0 {
		p = priority[0]
	}
	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, eventSubscriber{
		handler:  cb,
		id:       id,
		priority: p,
		seq:      b.nextSeq,
	})
	b.nextSeq++
	b.resort()
	return id
}

// Unsubscribe removes cb if present; a no-op otherwise. Only removes
// subscribers added via Subscribe — a SubscribeUnique entry has no
// handlerKey to match against and must be removed with UnsubscribeID.
func (b *EventBus) Unsubscribe(cb EventHandler) {
	key := handlerKey(cb)
	for i := range b.subscribers {
		if b.subscribers[i].key == key {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// UnsubscribeID removes the subscriber registered under id (as returned by
// SubscribeUnique); a no-op if id is unknown or was already removed.
func (b *EventBus) UnsubscribeID(id SubscriptionID) {
	for i := range b.subscribers {
		if b.subscribers[i].id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Clear removes every subscriber.
func (b *EventBus) Clear() {
	b.subscribers = nil
}

// Emit invokes every subscriber in ascending-priority order, insertion order
// breaking ties (spec T8).
func (b *EventBus) Emit(args ...any) {
	for _, s := range b.subscribers {
		s.handler(args...)
	}
}

// HasSubscribers reports whether any callback is registered.
func (b *EventBus) HasSubscribers() bool {
	return len(b.subscribers) > 0
}

// SubscriberCount returns the number of distinct registered callbacks.
func (b *EventBus) SubscriberCount() int {
	return len(b.subscribers)
}

func (b *EventBus) resort() {
	sort.SliceStable(b.subscribers, func(i, j int) bool {
		if b.subscribers[i].priority != b.subscribers[j].priority {
			return b.subscribers[i].priority < b.subscribers[j].priority
		}
		return b.subscribers[i].seq < b.subscribers[j].seq
	})
}
