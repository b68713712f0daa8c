package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"task-management/internal/domain"
	apperrors "task-management/internal/errors"
)

func taskIDFromRequest(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidInputError("id", raw, "must be a positive integer")
	}
	return id, nil
}

// parseTaskFilter builds a filter from the listing query parameters:
// status, priority, dueFrom, dueTo (RFC 3339), search, page, pageSize.
// Unknown enum names and malformed values are rejected rather than ignored.
func parseTaskFilter(r *http.Request) (domain.TaskFilter, error) {
	filter := domain.NewTaskFilter()
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status, ok := domain.ParseTaskStatus(raw)
		if !ok {
			return filter, apperrors.NewInvalidInputError("status", raw, "unknown status")
		}
		filter.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority, ok := domain.ParseTaskPriority(raw)
		if !ok {
			return filter, apperrors.NewInvalidInputError("priority", raw, "unknown priority")
		}
		filter.Priority = &priority
	}

	if raw := query.Get("dueFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("dueFrom", raw, "must be RFC 3339")
		}
		filter.DueDateFrom = &from
	}

	if raw := query.Get("dueTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("dueTo", raw, "must be RFC 3339")
		}
		filter.DueDateTo = &to
	}

	filter.SearchTerm = query.Get("search")

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("page", raw, "must be an integer")
		}
		filter.Page = page
	}

	if raw := query.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("pageSize", raw, "must be an integer")
		}
		filter.PageSize = size
	}

	return filter, nil
}

func (s *Server) handleAllTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	tasks, err := s.tasks.ListByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := s.tasks.ListFiltered(r.Context(), filter, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPagedTasksResponse(*page))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	create := domain.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.PriorityMedium,
		DueDate:     req.DueDate,
	}
	if req.Priority != "" {
		priority, ok := domain.ParseTaskPriority(req.Priority)
		if !ok {
			respondError(w, apperrors.NewInvalidInputError("priority", req.Priority, "unknown priority"))
			return
		}
		create.Priority = priority
	}

	task, err := s.tasks.Create(r.Context(), create, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTaskResponse(*task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := s.tasks.GetByID(r.Context(), taskID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponse(*task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority, ok := domain.ParseTaskPriority(*req.Priority)
		if !ok {
			respondError(w, apperrors.NewInvalidInputError("priority", *req.Priority, "unknown priority"))
			return
		}
		update.Priority = &priority
	}
	if req.Status != nil {
		status, ok := domain.ParseTaskStatus(*req.Status)
		if !ok {
			respondError(w, apperrors.NewInvalidInputError("status", *req.Status, "unknown status"))
			return
		}
		update.Status = &status
	}

	task, err := s.tasks.Update(r.Context(), taskID, update, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponse(*task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	deleted, err := s.tasks.Delete(r.Context(), taskID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, apperrors.NewNotFoundError("task", strconv.FormatInt(taskID, 10)))
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := s.tasks.Complete(r.Context(), taskID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponse(*task))
}

func (s *Server) handleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	tasks, err := s.tasks.ListOverdue(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (s *Server) handleTasksByStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	raw := mux.Vars(r)["status"]
	status, ok := domain.ParseTaskStatus(raw)
	if !ok {
		respondError(w, apperrors.NewInvalidInputError("status", raw, "unknown status"))
		return
	}

	tasks, err := s.tasks.ListByStatus(r.Context(), status, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTaskResponses(tasks))
}
