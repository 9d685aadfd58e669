package blackboard

import "github.com/google/uuid"

// NewSubscriber allocates a Subscriber with a fresh identity.
func NewSubscriber() *Subscriber {
	return &Subscriber{
		ID: uuid.New().String(),
	}
}
