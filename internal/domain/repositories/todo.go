package repositories

import (
	"context"

	"tasklet/internal/domain/models"
)

// TodoRepository is the item store gateway. Every operation is scoped
// by the owner's user id; no item is readable or mutable across
// owners. Operations are atomic at the single-item level only.
type TodoRepository interface {
	// List returns all of the owner's items ordered by creation
	// timestamp descending. The full result set is returned per call.
	List(ctx context.Context, userID string) ([]models.Todo, error)

	// Create inserts an item that already carries its identifier,
	// owner, creation timestamp and defaults.
	Create(ctx context.Context, todo *models.Todo) error

	// Update rewrites exactly the title, due date and done fields of
	// the (userID, todoID) item. Returns domain.ErrNotFound when no
	// such item exists.
	Update(ctx context.Context, userID, todoID string, update *models.TodoUpdate) error

	// Delete removes the (userID, todoID) item. Deleting an absent
	// item is a no-op, not an error.
	Delete(ctx context.Context, userID, todoID string) error

	// ConfirmAttachment sets the item's attachment reference. Returns
	// domain.ErrNotFound when no such item exists.
	ConfirmAttachment(ctx context.Context, userID, todoID, url string) error
}
