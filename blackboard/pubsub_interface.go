package blackboard

// notify is the contract the local fanout satisfies. Kept as an interface,
// the way the rest of the engine separates collaborator contracts from
// their implementation, so tests can substitute a recording stub.
type notify interface {
	// Subscribe registers handler for events of the given topic, creating a
	// Subscriber if none is supplied. Returns the Subscriber for later
	// Unsubscribe.
	Subscribe(topic string, subscriber *Subscriber, handler SubscriberHandler) *Subscriber

	// Unsubscribe removes subscriber from topic. No-op if not found.
	Unsubscribe(topic string, subscriber *Subscriber)

	// Publish fans event out to every subscriber of its topic. Handlers run
	// asynchronously; Publish never blocks on a slow handler.
	Publish(event Event)
}
