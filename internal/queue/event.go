// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// TaskEventsQueue is the durable queue task events are published to.
const TaskEventsQueue = "task.events"

// Task event types.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// TaskEvent is published after a task mutation has been persisted.  It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without reading the backing file.
type TaskEvent struct {
	Type       string    `json:"type"`
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title,omitempty"`
	Category   string    `json:"category,omitempty"`
	Priority   string    `json:"priority,omitempty"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}
