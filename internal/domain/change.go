package domain

import "time"

// UserRegistration carries the fields for creating a new account.
// All fields are assumed pre-validated (lengths, email syntax).
type UserRegistration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUpdate carries a partial update for a user. Nil pointers leave the
// existing value untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// TaskCreate carries the fields for creating a new task. Status is not
// part of the creation surface: new tasks always start Pending.
type TaskCreate struct {
	Title       string
	Description string
	Priority    TaskPriority
	DueDate     *time.Time
}

// TaskUpdate carries a partial update for a task. Nil pointers leave the
// existing value untouched. A nil DueDate therefore cannot clear an
// existing due date; the update surface has no way to express "set to
// null" separately from "not supplied".
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Status      *TaskStatus
	DueDate     *time.Time
}
