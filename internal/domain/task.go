package domain

import (
	"time"
)

// TaskPriority represents the urgency of a task.
type TaskPriority int

const (
	PriorityLow      TaskPriority = 1
	PriorityMedium   TaskPriority = 2
	PriorityHigh     TaskPriority = 3
	PriorityCritical TaskPriority = 4
)

// String returns the string representation of the priority
func (p TaskPriority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsValid checks if the priority is one of the defined values
func (p TaskPriority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// TaskStatus represents the lifecycle state of a task.
type TaskStatus int

const (
	StatusPending    TaskStatus = 1
	StatusInProgress TaskStatus = 2
	StatusCompleted  TaskStatus = 3
	StatusCancelled  TaskStatus = 4
)

// String returns the string representation of the status
func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsValid checks if the status is one of the defined values
func (s TaskStatus) IsValid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// ParseTaskStatus parses a status name as used in request paths and queries.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "in_progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	case "cancelled":
		return StatusCancelled, true
	default:
		return 0, false
	}
}

// ParseTaskPriority parses a priority name as used in queries.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch s {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	default:
		return 0, false
	}
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
//
// Invariant: CompletedAt is non-nil if and only if Status == StatusCompleted.
// OwnerID never changes after creation.
type Task struct {
	ID          int64
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
}

// IsCompleted returns true if the task has been completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if the task has a due date strictly before now
// and has not been completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Title != "" && t.Priority.IsValid() && t.Status.IsValid() && t.OwnerID > 0
}
