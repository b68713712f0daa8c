package domain

import "time"

// TaskFilter represents the conjunctive filter criteria for task listings.
// Nil pointers / empty strings mean the predicate is not applied.
// The search term matches a substring of either the title or the description;
// case sensitivity is whatever the persistence adapter does for LIKE.
type TaskFilter struct {
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	SearchTerm  string
	Page        int
	PageSize    int
}

// NewTaskFilter returns a filter with default pagination and no predicates.
func NewTaskFilter() TaskFilter {
	return TaskFilter{
		Page:     1,
		PageSize: 10,
	}
}

// Offset returns the number of rows to skip for the requested page.
func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
