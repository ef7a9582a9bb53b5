package messaging

import "context"

// StudentEvent is the payload published on student lifecycle changes.
type StudentEvent struct {
	StudentID string `json:"studentId"`
	TrainerID string `json:"trainerId,omitempty"`
	Name      string `json:"name,omitempty"`
}

// EventPublisher publishes student lifecycle events to interested
// consumers. Delivery is best effort from the caller's point of view.
type EventPublisher interface {
	PublishStudentCreated(ctx context.Context, evt StudentEvent) error
	PublishStudentDeleted(ctx context.Context, evt StudentEvent) error
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishStudentCreated(ctx context.Context, evt StudentEvent) error { return nil }
func (NopPublisher) PublishStudentDeleted(ctx context.Context, evt StudentEvent) error { return nil }
func (NopPublisher) Close() error                                                      { return nil }
