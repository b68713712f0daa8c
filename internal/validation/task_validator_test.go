package validation

import (
	"strings"
	"testing"
	"time"

	"task-management/internal/domain"
)

func TestTaskValidator_ValidateCreate(t *testing.T) {
	validator := NewTaskValidator()
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		create  domain.TaskCreate
		wantErr bool
	}{
		{
			name:    "valid task",
			create:  domain.TaskCreate{Title: "do it", Priority: domain.PriorityMedium},
			wantErr: false,
		},
		{
			name:    "valid task with future due date",
			create:  domain.TaskCreate{Title: "do it", Priority: domain.PriorityLow, DueDate: &future},
			wantErr: false,
		},
		{
			name:    "empty title",
			create:  domain.TaskCreate{Title: "", Priority: domain.PriorityLow},
			wantErr: true,
		},
		{
			name:    "whitespace title",
			create:  domain.TaskCreate{Title: "   ", Priority: domain.PriorityLow},
			wantErr: true,
		},
		{
			name:    "title too long",
			create:  domain.TaskCreate{Title: strings.Repeat("a", 201), Priority: domain.PriorityLow},
			wantErr: true,
		},
		{
			name: "description too long",
			create: domain.TaskCreate{
				Title: "ok", Description: strings.Repeat("a", 1001), Priority: domain.PriorityLow,
			},
			wantErr: true,
		},
		{
			name:    "priority out of range",
			create:  domain.TaskCreate{Title: "ok", Priority: domain.TaskPriority(9)},
			wantErr: true,
		},
		{
			name:    "due date in the past",
			create:  domain.TaskCreate{Title: "ok", Priority: domain.PriorityLow, DueDate: &past},
			wantErr: true,
		},
		{
			name:    "due date exactly now",
			create:  domain.TaskCreate{Title: "ok", Priority: domain.PriorityLow, DueDate: &now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateCreate(tt.create, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskValidator_ValidateUpdate(t *testing.T) {
	validator := NewTaskValidator()
	now := time.Now().UTC()

	empty := ""
	good := "fine"
	badPriority := domain.TaskPriority(0)
	badStatus := domain.TaskStatus(9)
	goodStatus := domain.StatusCancelled
	past := now.Add(-time.Minute)

	tests := []struct {
		name    string
		update  domain.TaskUpdate
		wantErr bool
	}{
		{"empty update is valid", domain.TaskUpdate{}, false},
		{"valid title", domain.TaskUpdate{Title: &good}, false},
		{"empty title rejected", domain.TaskUpdate{Title: &empty}, true},
		{"invalid priority rejected", domain.TaskUpdate{Priority: &badPriority}, true},
		{"invalid status rejected", domain.TaskUpdate{Status: &badStatus}, true},
		{"valid status accepted", domain.TaskUpdate{Status: &goodStatus}, false},
		{"past due date rejected", domain.TaskUpdate{DueDate: &past}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateUpdate(tt.update, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskValidator_ValidateFilter(t *testing.T) {
	validator := NewTaskValidator()
	now := time.Now().UTC()
	later := now.Add(time.Hour)

	badStatus := domain.TaskStatus(9)

	tests := []struct {
		name    string
		mutate  func(f *domain.TaskFilter)
		wantErr bool
	}{
		{"defaults are valid", func(f *domain.TaskFilter) {}, false},
		{"page zero", func(f *domain.TaskFilter) { f.Page = 0 }, true},
		{"negative page", func(f *domain.TaskFilter) { f.Page = -1 }, true},
		{"page size zero", func(f *domain.TaskFilter) { f.PageSize = 0 }, true},
		{"page size over maximum", func(f *domain.TaskFilter) { f.PageSize = 101 }, true},
		{"page size at maximum", func(f *domain.TaskFilter) { f.PageSize = 100 }, false},
		{"invalid status", func(f *domain.TaskFilter) { f.Status = &badStatus }, true},
		{"from after to", func(f *domain.TaskFilter) {
			f.DueDateFrom = &later
			f.DueDateTo = &now
		}, true},
		{"from before to", func(f *domain.TaskFilter) {
			f.DueDateFrom = &now
			f.DueDateTo = &later
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := domain.NewTaskFilter()
			tt.mutate(&filter)

			err := validator.ValidateFilter(filter)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	if err := validator.ValidateTaskID(1); err != nil {
		t.Errorf("expected id 1 to be valid, got %v", err)
	}
	if err := validator.ValidateTaskID(0); err == nil {
		t.Error("expected id 0 to be rejected")
	}
	if err := validator.ValidateTaskID(-5); err == nil {
		t.Error("expected negative id to be rejected")
	}
}
