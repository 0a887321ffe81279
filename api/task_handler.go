package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/errs"
	"github.com/roboarchive/roboarchive-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taskHandler struct {
	responder Responder
	logger    zerolog.Logger
	tasks     database.TaskStore
}

func newTaskHandler(tasks database.TaskStore) taskHandler {
	logger := log.With().Str("handlerName", "taskHandler").Logger()

	return taskHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tasks:     tasks,
	}
}

// getAllTasks lists tasks with assignee/creator names, soonest
// deadline first.
func (h taskHandler) getAllTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := h.tasks.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tasks", err))
			return
		}

		h.responder.WriteJSON(w, tasks)
	}
}

// createTask records a new task created by the calling member
func (h taskHandler) createTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req taskCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("task request"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		deadline, err := parseDate(req.Deadline)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("deadline", "expected YYYY-MM-DD"))
			return
		}

		task := models.Task{
			Title:       req.Title,
			Description: req.Description,
			Status:      models.TaskPending,
			AssignedTo:  req.AssignedTo,
			CreatedBy:   claims.MemberID,
			Deadline:    deadline,
			Priority:    models.PriorityMedium,
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}

		if err := h.tasks.Create(r.Context(), &task); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "task", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, task)
	}
}

// updateTask applies a partial update. Setting status to completed
// stamps completed_at and credits the assignee; that happens inside
// the store's transaction.
func (h taskHandler) updateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req taskUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("task update request"))
			return
		}

		deadline, err := parseDate(req.Deadline)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("deadline", "expected YYYY-MM-DD"))
			return
		}

		task, err := h.tasks.Update(r.Context(), id, database.TaskChanges{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			AssignedTo:  req.AssignedTo,
			Deadline:    deadline,
			Priority:    req.Priority,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "task", err))
			return
		}

		h.responder.WriteJSON(w, task)
	}
}

// deleteTask removes a task
func (h taskHandler) deleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tasks.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "task", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "task deleted successfully",
		})
	}
}

// parseDate accepts the date-only wire format used for deadlines, or
// a full RFC 3339 timestamp.
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
