package services

import (
	"context"
	"fmt"
	"time"

	"task-management/internal/domain"
	"task-management/internal/errors"
	"task-management/internal/repository/sqlite"
	"task-management/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// ownedTask is the authorize-then-fetch guard used by every single-task
// operation. A task owned by someone else produces the exact same
// NotFound error as a task that does not exist, so nonexistence and
// foreign ownership are indistinguishable to the caller.
func (t *taskServiceImpl) ownedTask(ctx context.Context, taskID, ownerID int64) (*sqlite.Task, error) {
	dbTask, err := t.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if dbTask.OwnerID != ownerID {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", taskID))
	}
	return dbTask, nil
}

// GetByID retrieves a task by ID, scoped to the owner
func (t *taskServiceImpl) GetByID(ctx context.Context, taskID, ownerID int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(taskID); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := t.ownedTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListByOwner retrieves all of an owner's tasks, newest first
func (t *taskServiceImpl) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	dbTasks, err := t.repo.ListTasksByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// ListFiltered retrieves one page of tasks matching the filter along with
// the total count of the filtered set. Filters are conjunctive and
// pagination applies after filtering.
func (t *taskServiceImpl) ListFiltered(ctx context.Context, filter domain.TaskFilter, ownerID int64) (*domain.PagedResult[domain.Task], error) {
	if err := t.taskValidator.ValidateFilter(filter); err != nil {
		return nil, errors.NewValidationError("invalid filter", err)
	}

	opts := t.mapper.Filter.ToDatabase(filter, ownerID)

	dbTasks, err := t.repo.SearchTasks(ctx, opts)
	if err != nil {
		return nil, err
	}
	totalCount, err := t.repo.CountTasks(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &domain.PagedResult[domain.Task]{
		Items:      t.mapper.Task.FromDatabaseSlice(dbTasks),
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// Create creates a new task for the owner. New tasks always start
// Pending regardless of anything the caller supplied.
func (t *taskServiceImpl) Create(ctx context.Context, create domain.TaskCreate, ownerID int64) (*domain.Task, error) {
	now := time.Now().UTC()

	if err := t.taskValidator.ValidateCreate(create, now); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	exists, err := t.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewOwnerNotFoundError(ownerID)
	}

	dbTask := t.mapper.Task.ToDatabase(domain.Task{
		Title:       create.Title,
		Description: create.Description,
		Priority:    create.Priority,
		Status:      domain.StatusPending,
		OwnerID:     ownerID,
		CreatedAt:   now,
		DueDate:     create.DueDate,
	})

	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(dbTask)
	return &task, nil
}

// Update applies a partial update under the ownership guard. The
// completion timestamp follows the status transition: moving into
// Completed stamps it, moving out of Completed clears it, and any other
// transition leaves it alone. UpdatedAt is always refreshed.
func (t *taskServiceImpl) Update(ctx context.Context, taskID int64, update domain.TaskUpdate, ownerID int64) (*domain.Task, error) {
	now := time.Now().UTC()

	if err := t.taskValidator.ValidateTaskID(taskID); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}
	if err := t.taskValidator.ValidateUpdate(update, now); err != nil {
		return nil, errors.NewValidationError("invalid task update", err)
	}

	dbTask, err := t.ownedTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	priorStatus := domain.TaskStatus(dbTask.Status)

	if update.Title != nil {
		dbTask.Title = *update.Title
	}
	if update.Description != nil {
		dbTask.Description = *update.Description
	}
	if update.Priority != nil {
		dbTask.Priority = int(*update.Priority)
	}
	if update.DueDate != nil {
		dbTask.DueDate = update.DueDate
	}
	if update.Status != nil {
		dbTask.Status = int(*update.Status)
		if *update.Status == domain.StatusCompleted && priorStatus != domain.StatusCompleted {
			completedAt := now
			dbTask.CompletedAt = &completedAt
		} else if *update.Status != domain.StatusCompleted && priorStatus == domain.StatusCompleted {
			dbTask.CompletedAt = nil
		}
	}

	dbTask.UpdatedAt = &now

	if err := t.repo.UpdateTask(ctx, dbTask); err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// Complete forces the task into Completed and stamps CompletedAt with the
// current time unconditionally, so repeated calls keep moving the stamp
// forward while the status stays Completed.
func (t *taskServiceImpl) Complete(ctx context.Context, taskID, ownerID int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(taskID); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := t.ownedTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dbTask.Status = int(domain.StatusCompleted)
	dbTask.CompletedAt = &now
	dbTask.UpdatedAt = &now

	if err := t.repo.UpdateTask(ctx, dbTask); err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// Delete removes a task under the ownership guard, returning false for a
// missing or foreign task without distinguishing the two.
func (t *taskServiceImpl) Delete(ctx context.Context, taskID, ownerID int64) (bool, error) {
	if err := t.taskValidator.ValidateTaskID(taskID); err != nil {
		return false, errors.NewValidationError("invalid task ID", err)
	}

	_, err := t.ownedTask(ctx, taskID, ownerID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := t.repo.DeleteTask(ctx, taskID); err != nil {
		return false, err
	}
	return true, nil
}

// ListOverdue retrieves the owner's tasks with a due date strictly before
// now that are not completed, earliest due date first
func (t *taskServiceImpl) ListOverdue(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	dbTasks, err := t.repo.ListOverdueTasks(ctx, ownerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// ListByStatus retrieves the owner's tasks with the given status, newest first
func (t *taskServiceImpl) ListByStatus(ctx context.Context, status domain.TaskStatus, ownerID int64) ([]domain.Task, error) {
	if !status.IsValid() {
		return nil, errors.NewValidationError("invalid status", nil)
	}

	dbTasks, err := t.repo.ListTasksByStatus(ctx, ownerID, int(status))
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}
