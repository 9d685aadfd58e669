package blackboard

import "github.com/shaply/automesh/shared/data_structures"

// notifier is the local (in-process) publish/subscribe fanout used to tell
// subscribers about blackboard writes, without the tick path ever blocking
// on a slow subscriber.
//
// A topic stays in subscriptions after its last subscriber leaves;
// publishing to a topic with no subscribers is a no-op.
type notifier struct {
	subscriptions *data_structures.SafeMap[string, *data_structures.SafeSet[Subscriber]]
	handlers      *data_structures.SafeMap[Subscriber, SubscriberHandler]
}

// Subscriber identifies a notifier registration. Comparable by ID so it can
// live in a SafeSet/SafeMap key; the handler closure is stored separately.
type Subscriber struct {
	ID string
}

// SubscriberHandler is invoked, in its own goroutine, once per published
// Event matching the topic it was subscribed under.
type SubscriberHandler func(event Event)

// Event is a published notification. The blackboard publishes one topic
// per written key, of the form "key:<name>".
type Event interface {
	GetType() string
	GetData() interface{}
}

// KeyEvent is the concrete Event published for every successful blackboard
// Write, carrying the key and the value the RT path accepted.
type KeyEvent struct {
	Key   string
	Value interface{}
}

func (e *KeyEvent) GetType() string     { return "key:" + e.Key }
func (e *KeyEvent) GetData() interface{} { return e.Value }
