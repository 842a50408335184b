package lambdaapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"tasklet/internal/domain/services"

	"github.com/aws/aws-lambda-go/events"
)

// Handlers exposes one method per API Gateway route, each deployable
// as an independent Lambda function. All of them share one TodoService
// constructed in the function's main and injected here.
type Handlers struct {
	todoService services.TodoService
	logger      *slog.Logger
}

func NewHandlers(todoService services.TodoService, logger *slog.Logger) *Handlers {
	return &Handlers{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos handles GET /todos.
func (h *Handlers) ListTodos(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent("listTodos", req)

	userID, err := callerID(req)
	if err != nil {
		return respondDomainError(err), nil
	}

	todos, err := h.todoService.ListTodos(ctx, userID)
	if err != nil {
		return respondDomainError(err), nil
	}

	return respond(http.StatusOK, map[string]interface{}{"items": todos}), nil
}

// CreateTodo handles POST /todos.
func (h *Handlers) CreateTodo(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent("createTodo", req)

	userID, err := callerID(req)
	if err != nil {
		return respondDomainError(err), nil
	}

	var body services.CreateTodoRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return respondError(http.StatusBadRequest, "invalid request body"), nil
	}
	body.UserID = userID

	todo, err := h.todoService.CreateTodo(ctx, &body)
	if err != nil {
		return respondDomainError(err), nil
	}

	return respond(http.StatusCreated, map[string]interface{}{"item": todo}), nil
}

// UpdateTodo handles PATCH /todos/{id}.
func (h *Handlers) UpdateTodo(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent("updateTodo", req)

	userID, err := callerID(req)
	if err != nil {
		return respondDomainError(err), nil
	}

	todoID := req.PathParameters["id"]
	if todoID == "" {
		return respondError(http.StatusBadRequest, "todo ID is required"), nil
	}

	var body services.UpdateTodoRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return respondError(http.StatusBadRequest, "invalid request body"), nil
	}

	if err := h.todoService.UpdateTodo(ctx, userID, todoID, &body); err != nil {
		return respondDomainError(err), nil
	}

	return respond(http.StatusNoContent, nil), nil
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *Handlers) DeleteTodo(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent("deleteTodo", req)

	userID, err := callerID(req)
	if err != nil {
		return respondDomainError(err), nil
	}

	todoID := req.PathParameters["id"]
	if todoID == "" {
		return respondError(http.StatusBadRequest, "todo ID is required"), nil
	}

	if err := h.todoService.DeleteTodo(ctx, userID, todoID); err != nil {
		return respondDomainError(err), nil
	}

	return respond(http.StatusNoContent, nil), nil
}

// GenerateUploadURL handles POST /todos/{id}/attachment.
func (h *Handlers) GenerateUploadURL(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent("generateUploadUrl", req)

	userID, err := callerID(req)
	if err != nil {
		return respondDomainError(err), nil
	}

	todoID := req.PathParameters["id"]
	if todoID == "" {
		return respondError(http.StatusBadRequest, "todo ID is required"), nil
	}

	uploadURL, err := h.todoService.GenerateUploadURL(ctx, userID, todoID)
	if err != nil {
		return respondDomainError(err), nil
	}

	return respond(http.StatusCreated, map[string]string{"uploadUrl": uploadURL}), nil
}

func (h *Handlers) logEvent(handlerName string, req events.APIGatewayProxyRequest) {
	h.logger.Info("processing request",
		"handler", handlerName,
		"method", req.HTTPMethod,
		"path", req.Path,
	)
}
