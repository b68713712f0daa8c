package validation

import (
	"time"

	"task-management/internal/config"
	"task-management/internal/domain"
)

// TaskValidator validates task creation, update and filter input.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new TaskValidator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a new TaskValidator with configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateCreate checks a task creation request
func (tv *TaskValidator) ValidateCreate(create domain.TaskCreate, now time.Time) error {
	limits := tv.validator.limits()
	ve := NewValidationError()

	if !tv.validator.IsNonEmptyString(create.Title) {
		ve.AddRequiredError("title")
	} else if len(create.Title) > limits.TitleMaxLength {
		ve.AddInvalidLengthError("title", create.Title, 0, limits.TitleMaxLength)
	}

	if len(create.Description) > limits.DescriptionMaxLength {
		ve.AddInvalidLengthError("description", nil, 0, limits.DescriptionMaxLength)
	}

	if !create.Priority.IsValid() {
		ve.AddInvalidValueError("priority", int(create.Priority), "not a defined priority")
	}

	if create.DueDate != nil && !create.DueDate.After(now) {
		ve.AddInvalidValueError("dueDate", create.DueDate, "must be in the future")
	}

	return ve.ErrOrNil()
}

// ValidateUpdate checks a partial task update. Nil fields are skipped.
func (tv *TaskValidator) ValidateUpdate(update domain.TaskUpdate, now time.Time) error {
	limits := tv.validator.limits()
	ve := NewValidationError()

	if update.Title != nil {
		if !tv.validator.IsNonEmptyString(*update.Title) {
			ve.AddRequiredError("title")
		} else if len(*update.Title) > limits.TitleMaxLength {
			ve.AddInvalidLengthError("title", *update.Title, 0, limits.TitleMaxLength)
		}
	}

	if update.Description != nil && len(*update.Description) > limits.DescriptionMaxLength {
		ve.AddInvalidLengthError("description", nil, 0, limits.DescriptionMaxLength)
	}

	if update.Priority != nil && !update.Priority.IsValid() {
		ve.AddInvalidValueError("priority", int(*update.Priority), "not a defined priority")
	}

	if update.Status != nil && !update.Status.IsValid() {
		ve.AddInvalidValueError("status", int(*update.Status), "not a defined status")
	}

	if update.DueDate != nil && !update.DueDate.After(now) {
		ve.AddInvalidValueError("dueDate", update.DueDate, "must be in the future")
	}

	return ve.ErrOrNil()
}

// ValidateFilter checks the filter and pagination constraints: page >= 1,
// 1 <= pageSize <= max, dueDateFrom <= dueDateTo.
func (tv *TaskValidator) ValidateFilter(filter domain.TaskFilter) error {
	limits := tv.validator.limits()
	ve := NewValidationError()

	if filter.Page < 1 {
		ve.AddInvalidRangeError("page", filter.Page, "must be greater than 0")
	}
	if filter.PageSize < 1 {
		ve.AddInvalidRangeError("pageSize", filter.PageSize, "must be greater than 0")
	} else if filter.PageSize > limits.MaxPageSize {
		ve.AddInvalidRangeError("pageSize", filter.PageSize, "exceeds the maximum page size")
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		ve.AddInvalidValueError("status", int(*filter.Status), "not a defined status")
	}
	if filter.Priority != nil && !filter.Priority.IsValid() {
		ve.AddInvalidValueError("priority", int(*filter.Priority), "not a defined priority")
	}

	if filter.DueDateFrom != nil && filter.DueDateTo != nil && filter.DueDateFrom.After(*filter.DueDateTo) {
		ve.AddInvalidRangeError("dueDateFrom", filter.DueDateFrom, "must not be after dueDateTo")
	}

	return ve.ErrOrNil()
}

// ValidateTaskID checks that a task ID is positive
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError("id", id, "must be positive")
		return ve
	}
	return nil
}
