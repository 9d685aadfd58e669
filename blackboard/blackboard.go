// Package blackboard implements the engine's shared key/value store: the
// channel through which sensors, controllers and external tools exchange
// named values without coupling to each other directly.
//
// Two paths touch the store. The tick path (real-time callers of
// TryReadIncoming and Write) runs on a deadline and must never block. The
// network path (an optional gorilla/websocket connection) serves external
// readers/writers and may legitimately stall on I/O. BlackBoard keeps them
// apart with two independent mutexes -- one per direction -- each acquired
// with TryLock from the tick path, modelled on
// RTBlackBoard's WaitForSingleObject(mutex, 0) pattern: if the lock isn't
// free, the tick path skips the update rather than waiting for it.
package blackboard

import (
	"sync"

	"github.com/shaply/automesh/shared"
)

// BlackBoard is the engine's shared read/write key-value store.
type BlackBoard struct {
	readMu  sync.Mutex // guards values written by the network path, read by the tick path
	writeMu sync.Mutex // guards values written by the tick path, read by the network path

	incoming map[string]interface{} // network -> tick (sensor inputs, overrides)
	outgoing map[string]interface{} // tick -> network (published state)

	notifier *notifier

	usesNetwork bool
}

// New constructs an empty BlackBoard. usesNetwork controls whether Serve
// accepts websocket connections; with usesNetwork false Serve refuses every
// request and Write/TryReadIncoming operate purely in-process.
func New(usesNetwork bool) *BlackBoard {
	return &BlackBoard{
		incoming:    make(map[string]interface{}),
		outgoing:    make(map[string]interface{}),
		notifier:    newNotifier(),
		usesNetwork: usesNetwork,
	}
}

// TryReadIncoming returns the value last delivered by the network path for
// key, without blocking. ok is false if the input buffer's lock is
// currently held by the network goroutine or the key is absent; callers on
// the tick path should treat a false ok as "keep the previous value" rather
// than an error.
func (b *BlackBoard) TryReadIncoming(key string) (value interface{}, ok bool) {
	if !b.readMu.TryLock() {
		return nil, false
	}
	defer b.readMu.Unlock()

	v, found := b.incoming[key]
	return v, found
}

// Write publishes value under key for the network path to observe, and
// notifies local subscribers of the write. Called from the tick path; never
// blocks -- if writeMu is currently held by snapshotOutgoing, the write is
// skipped for this tick rather than waited on.
func (b *BlackBoard) Write(key string, value interface{}) {
	if !b.writeMu.TryLock() {
		return
	}
	b.outgoing[key] = value
	b.writeMu.Unlock()

	b.notifier.Publish(NewKeyEvent(key, value))
}

// Subscribe registers handler to be called, asynchronously, whenever key is
// Written. Returns a Subscriber handle for Unsubscribe.
func (b *BlackBoard) Subscribe(key string, handler SubscriberHandler) *Subscriber {
	return b.notifier.Subscribe("key:"+key, nil, handler)
}

// Unsubscribe removes a prior Subscribe registration for key.
func (b *BlackBoard) Unsubscribe(key string, sub *Subscriber) {
	b.notifier.Unsubscribe("key:"+key, sub)
}

// snapshotOutgoing copies the current outgoing buffer for delivery to the
// network path. Used by Serve; acquires writeMu only for the duration of
// the copy, never across a socket write.
func (b *BlackBoard) snapshotOutgoing() map[string]interface{} {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	out := make(map[string]interface{}, len(b.outgoing))
	for k, v := range b.outgoing {
		out[k] = v
	}
	return out
}

// replaceIncoming swaps in a freshly received buffer from the network path.
// Blocks on readMu (the network goroutine can afford to wait; the tick
// path never calls this).
func (b *BlackBoard) replaceIncoming(next map[string]interface{}) {
	b.readMu.Lock()
	defer b.readMu.Unlock()

	for k, v := range next {
		b.incoming[k] = v
		shared.DebugPrint("blackboard: applied incoming %s", k)
	}
}
