package handler

import (
	"log/slog"
	"net/http"

	"tasklet/internal/domain/services"
	"tasklet/internal/httputil"
)

// TodoHandler handles to-do HTTP requests
type TodoHandler struct {
	todoService services.TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new to-do handler
func NewTodoHandler(todoService services.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos retrieves all items for the user, newest first
// GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	todos, err := h.todoService.ListTodos(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"items": todos})
}

// CreateTodo creates a new item
// POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req services.CreateTodoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	todo, err := h.todoService.CreateTodo(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{"item": todo})
}

// UpdateTodo rewrites an item's title, due date and done flag
// PATCH /todos/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "todo ID is required")
		return
	}

	var req services.UpdateTodoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.todoService.UpdateTodo(r.Context(), userID, id, &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTodo removes an item; deleting an absent item is a no-op
// DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "todo ID is required")
		return
	}

	if err := h.todoService.DeleteTodo(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateUploadURL issues a presigned attachment upload URL
// POST /todos/{id}/attachment
func (h *TodoHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "todo ID is required")
		return
	}

	uploadURL, err := h.todoService.GenerateUploadURL(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{"uploadUrl": uploadURL})
}

// HealthCheck reports process liveness
// GET /health
func (h *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
