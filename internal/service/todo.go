package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tasklet/internal/domain"
	"tasklet/internal/domain/models"
	"tasklet/internal/domain/repositories"
	"tasklet/internal/domain/services"
	"tasklet/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const maxTitleLength = 256

// todoService implements the TodoService interface
type todoService struct {
	todoRepo    repositories.TodoRepository
	attachments *storage.AttachmentStore
	logger      *slog.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(
	todoRepo repositories.TodoRepository,
	attachments *storage.AttachmentStore,
	logger *slog.Logger,
) services.TodoService {
	return &todoService{
		todoRepo:    todoRepo,
		attachments: attachments,
		logger:      logger,
	}
}

// ListTodos retrieves all items for a user, newest first
func (s *todoService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	return s.todoRepo.List(ctx, userID)
}

// CreateTodo creates a new item owned by the requesting user
func (s *todoService) CreateTodo(ctx context.Context, req *services.CreateTodoRequest) (*models.Todo, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	todo := &models.Todo{
		TodoID:    uuid.NewString(),
		UserID:    req.UserID,
		Title:     req.Title,
		DueDate:   req.DueDate,
		Done:      false,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("todo created",
		"todo_id", todo.TodoID,
		"user_id", todo.UserID,
	)

	return todo, nil
}

// UpdateTodo rewrites the mutable fields of the user's item
func (s *todoService) UpdateTodo(ctx context.Context, userID, todoID string, req *services.UpdateTodoRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateUpdateRequest(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	update := &models.TodoUpdate{
		Title:   req.Title,
		DueDate: req.DueDate,
		Done:    req.Done,
	}

	return s.todoRepo.Update(ctx, userID, todoID, update)
}

// DeleteTodo removes the user's item; deleting an absent item is a no-op
func (s *todoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return s.todoRepo.Delete(ctx, userID, todoID)
}

// GenerateUploadURL binds the attachment reference to the user's item,
// then returns a presigned upload URL for the attachment object. The
// ownership check happens in the owner-scoped attachment confirmation;
// the presign itself is not owner-aware.
func (s *todoService) GenerateUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	objectURL := s.attachments.ObjectURL(todoID)
	if err := s.todoRepo.ConfirmAttachment(ctx, userID, todoID, objectURL); err != nil {
		return "", err
	}

	uploadURL, err := s.attachments.PresignUpload(ctx, todoID)
	if err != nil {
		return "", err
	}

	s.logger.Info("upload url issued",
		"todo_id", todoID,
		"user_id", userID,
	)

	return uploadURL, nil
}

func (s *todoService) validateCreateRequest(req *services.CreateTodoRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&req.DueDate,
			validation.Date("2006-01-02"),
		),
	)
}

func (s *todoService) validateUpdateRequest(req *services.UpdateTodoRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, maxTitleLength),
		),
		validation.Field(&req.DueDate,
			validation.Date("2006-01-02"),
		),
	)
}
