package adapter

import "fitness-tracker/internal/domain/model"

// NotificationDispatcher accepts a notification for asynchronous delivery.
// Dispatch never blocks on the transport: it either queues the request or
// rejects it when the backlog is full. Delivery outcomes are not surfaced.
type NotificationDispatcher interface {
	Dispatch(req model.NotificationRequest) error
}
