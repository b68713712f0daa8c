package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"task-management/internal/errors"
	"task-management/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// TaskSearchOptions contains all search parameters for filtered task queries.
// OwnerID is always applied; the remaining predicates are optional and
// combined with AND.
type TaskSearchOptions struct {
	OwnerID     int64
	Status      *int
	Priority    *int
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	SearchTerm  string
	Limit       int
	Offset      int
}

// Repository defines the interface for database operations
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id int64) error

	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasksByOwner(ctx context.Context, ownerID int64) ([]*Task, error)
	SearchTasks(ctx context.Context, opts TaskSearchOptions) ([]*Task, error)
	CountTasks(ctx context.Context, opts TaskSearchOptions) (int64, error)
	ListOverdueTasks(ctx context.Context, ownerID int64, now time.Time) ([]*Task, error)
	ListTasksByStatus(ctx context.Context, ownerID int64, status int) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	// Utility
	Close() error
}

const userColumns = "id, username, email, password_hash, first_name, last_name, is_active, created_at, updated_at"
const taskColumns = "id, title, description, priority, status, owner_id, created_at, updated_at, due_date, completed_at"

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection serializes writes and keeps the pragma applied.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateUser inserts a new user. A UNIQUE violation on username or email
// surfaces as a Conflict error.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
	INSERT INTO users (username, email, password_hash, first_name, last_name, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsActive, FormatTimeForDB(user.CreatedAt), FormatTimePtrForDB(user.UpdatedAt))
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, userColumns)
	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = ?`, userColumns)
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// GetUserByEmail retrieves a user by email
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = ?`, userColumns)
	return QuerySingle(ctx, r.db, query, ScanUser, "user", email, email)
}

// UsernameExists reports whether a user with the given username exists
func (r *SQLiteRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := QueryCount(ctx, r.db, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
	return count > 0, err
}

// EmailExists reports whether a user with the given email exists
func (r *SQLiteRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := QueryCount(ctx, r.db, `SELECT COUNT(*) FROM users WHERE email = ?`, email)
	return count > 0, err
}

// UserExists reports whether a user with the given ID exists
func (r *SQLiteRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	count, err := QueryCount(ctx, r.db, `SELECT COUNT(*) FROM users WHERE id = ?`, id)
	return count > 0, err
}

// UpdateUser updates an existing user. A UNIQUE violation on the new email
// surfaces as a Conflict error.
func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *User) error {
	query := `
	UPDATE users
	SET username = ?, email = ?, password_hash = ?, first_name = ?, last_name = ?, is_active = ?, updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "user", fmt.Sprintf("%d", user.ID),
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsActive, FormatTimePtrForDB(user.UpdatedAt), user.ID)
}

// DeleteUser deletes a user by ID. Owned tasks cascade at the schema level.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", fmt.Sprintf("%d", id), id)
}

// CreateTask inserts a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (title, description, priority, status, owner_id, created_at, updated_at, due_date, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Title, task.Description, task.Priority, task.Status, task.OwnerID,
		FormatTimeForDB(task.CreatedAt), FormatTimePtrForDB(task.UpdatedAt),
		FormatTimePtrForDB(task.DueDate), FormatTimePtrForDB(task.CompletedAt))
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID regardless of owner. Ownership scoping is
// the query engine's responsibility.
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = ?`, taskColumns)
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasksByOwner retrieves all tasks for an owner, newest first
func (r *SQLiteRepository) ListTasksByOwner(ctx context.Context, ownerID int64) ([]*Task, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM tasks
	WHERE owner_id = ?
	ORDER BY created_at DESC, id DESC`, taskColumns)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", ownerID)
}

// buildTaskFilter composes the WHERE clause shared by SearchTasks and
// CountTasks so the page and the total always agree on the filtered set.
func buildTaskFilter(opts TaskSearchOptions) (string, []interface{}) {
	conditions := []string{"owner_id = ?"}
	args := []interface{}{opts.OwnerID}

	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *opts.Priority)
	}
	if opts.DueDateFrom != nil {
		conditions = append(conditions, "due_date >= ?")
		args = append(args, FormatTimePtrForDB(opts.DueDateFrom))
	}
	if opts.DueDateTo != nil {
		conditions = append(conditions, "due_date <= ?")
		args = append(args, FormatTimePtrForDB(opts.DueDateTo))
	}
	if opts.SearchTerm != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		pattern := "%" + opts.SearchTerm + "%"
		args = append(args, pattern, pattern)
	}

	return strings.Join(conditions, " AND "), args
}

// SearchTasks retrieves one page of tasks matching the filter, newest first
func (r *SQLiteRepository) SearchTasks(ctx context.Context, opts TaskSearchOptions) ([]*Task, error) {
	where, args := buildTaskFilter(opts)
	query := fmt.Sprintf(`
	SELECT %s FROM tasks
	WHERE %s
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?`, taskColumns, where)
	args = append(args, opts.Limit, opts.Offset)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// CountTasks returns the total number of tasks matching the filter,
// ignoring pagination
func (r *SQLiteRepository) CountTasks(ctx context.Context, opts TaskSearchOptions) (int64, error) {
	where, args := buildTaskFilter(opts)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM tasks WHERE %s`, where)
	return QueryCount(ctx, r.db, query, args...)
}

// ListOverdueTasks retrieves tasks with a due date strictly before now that
// are not completed, earliest due date first
func (r *SQLiteRepository) ListOverdueTasks(ctx context.Context, ownerID int64, now time.Time) ([]*Task, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM tasks
	WHERE owner_id = ? AND due_date IS NOT NULL AND due_date < ? AND status != ?
	ORDER BY due_date ASC, id ASC`, taskColumns)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", ownerID, FormatTimeForDB(now), statusCompleted)
}

// ListTasksByStatus retrieves all tasks for an owner with the given status,
// newest first
func (r *SQLiteRepository) ListTasksByStatus(ctx context.Context, ownerID int64, status int) ([]*Task, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM tasks
	WHERE owner_id = ? AND status = ?
	ORDER BY created_at DESC, id DESC`, taskColumns)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", ownerID, status)
}

// UpdateTask updates an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, priority = ?, status = ?, updated_at = ?, due_date = ?, completed_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", task.ID),
		task.Title, task.Description, task.Priority, task.Status,
		FormatTimePtrForDB(task.UpdatedAt), FormatTimePtrForDB(task.DueDate),
		FormatTimePtrForDB(task.CompletedAt), task.ID)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// statusCompleted mirrors domain.StatusCompleted without importing the
// domain package from the persistence layer.
const statusCompleted = 3
