package services

import (
	"context"
	"time"

	"task-management/internal/domain"
)

// AuthSession is the outcome of a successful authentication: a signed
// session token, its absolute expiry, and the identity it asserts.
type AuthSession struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// UserService orchestrates credential issuance and account lifecycle.
//
// Outcomes are reported through the errors package taxonomy: Conflict for
// username/email collisions, Unauthenticated for any credential failure
// (deliberately not distinguishing missing users, inactive accounts and
// wrong passwords), NotFound for lookups of absent users.
type UserService interface {
	Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*AuthSession, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TaskService is the owner-scoped task query and mutation engine. Every
// operation takes an already-authenticated owner id; none of them verify
// tokens.
//
// Ownership is information-hiding: a task belonging to a different owner
// is reported exactly like a task that does not exist (NotFound error, or
// false for Delete). Callers can never learn that a foreign task exists.
type TaskService interface {
	GetByID(ctx context.Context, taskID, ownerID int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	ListFiltered(ctx context.Context, filter domain.TaskFilter, ownerID int64) (*domain.PagedResult[domain.Task], error)
	Create(ctx context.Context, create domain.TaskCreate, ownerID int64) (*domain.Task, error)
	Update(ctx context.Context, taskID int64, update domain.TaskUpdate, ownerID int64) (*domain.Task, error)
	Complete(ctx context.Context, taskID, ownerID int64) (*domain.Task, error)
	Delete(ctx context.Context, taskID, ownerID int64) (bool, error)
	ListOverdue(ctx context.Context, ownerID int64) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus, ownerID int64) ([]domain.Task, error)
}
