package sqlite

import "time"

// User represents a user row in the users table.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time // Using pointer to allow NULL values
}

// Task represents a task row in the tasks table. Priority and status are
// stored as their integer enum values.
type Task struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Status      int
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
}
