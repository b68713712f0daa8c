package domain

import (
	"task-management/internal/repository/sqlite"
)

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(user User) sqlite.User {
	return sqlite.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(dbUser sqlite.User) User {
	return User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		IsActive:     dbUser.IsActive,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(task Task) sqlite.Task {
	return sqlite.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    int(task.Priority),
		Status:      int(task.Status),
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Priority:    TaskPriority(dbTask.Priority),
		Status:      TaskStatus(dbTask.Status),
		OwnerID:     dbTask.OwnerID,
		CreatedAt:   dbTask.CreatedAt,
		UpdatedAt:   dbTask.UpdatedAt,
		DueDate:     dbTask.DueDate,
		CompletedAt: dbTask.CompletedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	tasks := make([]Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		tasks[i] = m.FromDatabase(*dbTask)
	}
	return tasks
}

// FilterMapper handles conversion from domain TaskFilter to database
// search options.
type FilterMapper struct{}

// NewFilterMapper creates a new FilterMapper instance.
func NewFilterMapper() *FilterMapper {
	return &FilterMapper{}
}

// ToDatabase converts a domain TaskFilter to database TaskSearchOptions,
// turning page arithmetic into limit/offset.
func (m *FilterMapper) ToDatabase(filter TaskFilter, ownerID int64) sqlite.TaskSearchOptions {
	opts := sqlite.TaskSearchOptions{
		OwnerID:     ownerID,
		DueDateFrom: filter.DueDateFrom,
		DueDateTo:   filter.DueDateTo,
		SearchTerm:  filter.SearchTerm,
		Limit:       filter.PageSize,
		Offset:      filter.Offset(),
	}
	if filter.Status != nil {
		status := int(*filter.Status)
		opts.Status = &status
	}
	if filter.Priority != nil {
		priority := int(*filter.Priority)
		opts.Priority = &priority
	}
	return opts
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User   *UserMapper
	Task   *TaskMapper
	Filter *FilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:   NewUserMapper(),
		Task:   NewTaskMapper(),
		Filter: NewFilterMapper(),
	}
}
