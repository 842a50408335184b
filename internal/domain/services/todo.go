package services

import (
	"context"

	"tasklet/internal/domain/models"
)

// CreateTodoRequest is the payload for creating an item. UserID is
// filled in from the verified identity, never from the client body.
type CreateTodoRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
	UserID  string `json:"-"`
}

// UpdateTodoRequest is the payload for rewriting an item's mutable
// fields.
type UpdateTodoRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

// TodoService is the business-logic surface behind the HTTP and Lambda
// handlers. Every operation is scoped to the authenticated owner.
type TodoService interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, req *CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, req *UpdateTodoRequest) error
	DeleteTodo(ctx context.Context, userID, todoID string) error

	// GenerateUploadURL sets the item's attachment reference and
	// returns a presigned upload URL for the attachment object.
	GenerateUploadURL(ctx context.Context, userID, todoID string) (string, error)
}
