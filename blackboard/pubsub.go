package blackboard

import "github.com/shaply/automesh/shared/data_structures"

// newNotifier constructs an empty local fanout.
func newNotifier() *notifier {
	return &notifier{
		subscriptions: data_structures.NewSafeMap[string, *data_structures.SafeSet[Subscriber]](),
		handlers:      data_structures.NewSafeMap[Subscriber, SubscriberHandler](),
	}
}

func (n *notifier) Subscribe(topic string, subscriber *Subscriber, handler SubscriberHandler) *Subscriber {
	if subscriber == nil {
		subscriber = NewSubscriber()
	}

	n.handlers.Set(*subscriber, handler)

	set := n.subscriptions.GetOrDefault(topic, data_structures.NewSafeSet[Subscriber]())
	set.Add(*subscriber)
	n.subscriptions.Set(topic, set)
	return subscriber
}

func (n *notifier) Unsubscribe(topic string, subscriber *Subscriber) {
	if subscriber == nil {
		return
	}

	if set, ok := n.subscriptions.Get(topic); ok {
		set.Remove(*subscriber)
	}
	n.handlers.Delete(*subscriber)
}

func (n *notifier) Publish(event Event) {
	if event == nil {
		return
	}

	topic := event.GetType()
	set, ok := n.subscriptions.Get(topic)
	if !ok {
		return
	}
	for sub := range set.Iterate() {
		if handler, ok := n.handlers.Get(sub); ok {
			go handler(event)
		}
	}
}
