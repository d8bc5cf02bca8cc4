package queue

import "context"

// Publisher mirrors captured webhooks onto a message broker.
type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}
