package lambdaapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"tasklet/internal/domain"
	"tasklet/internal/domain/models"
	"tasklet/internal/domain/services"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTodoService struct {
	todos     []models.Todo
	created   *services.CreateTodoRequest
	updated   *services.UpdateTodoRequest
	deletedID string
	uploadURL string
	err       error
}

func (f *fakeTodoService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	return f.todos, f.err
}

func (f *fakeTodoService) CreateTodo(ctx context.Context, req *services.CreateTodoRequest) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = req
	return &models.Todo{TodoID: "todo-1", UserID: req.UserID, Title: req.Title, DueDate: req.DueDate}, nil
}

func (f *fakeTodoService) UpdateTodo(ctx context.Context, userID, todoID string, req *services.UpdateTodoRequest) error {
	f.updated = req
	return f.err
}

func (f *fakeTodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	f.deletedID = todoID
	return f.err
}

func (f *fakeTodoService) GenerateUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	return f.uploadURL, f.err
}

func authorizedRequest(method, path, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Body:       body,
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{"principalId": "u1"},
		},
	}
}

func TestListTodos(t *testing.T) {
	svc := &fakeTodoService{todos: []models.Todo{{TodoID: "todo-1", UserID: "u1", Title: "first"}}}
	h := NewHandlers(svc, testLogger())

	resp, err := h.ListTodos(context.Background(), authorizedRequest(http.MethodGet, "/todos", ""))
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("missing CORS allow-origin header")
	}

	var body struct {
		Items []models.Todo `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Title != "first" {
		t.Errorf("items = %+v, want the stored item", body.Items)
	}
}

func TestCreateTodoBindsPrincipal(t *testing.T) {
	svc := &fakeTodoService{}
	h := NewHandlers(svc, testLogger())

	req := authorizedRequest(http.MethodPost, "/todos", `{"title":"Buy milk","dueDate":"2024-02-01"}`)
	resp, err := h.CreateTodo(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", resp.StatusCode, resp.Body)
	}
	if svc.created == nil || svc.created.UserID != "u1" {
		t.Errorf("created request = %+v, want owner u1 from authorizer context", svc.created)
	}
}

func TestCreateTodoRejectsBadBody(t *testing.T) {
	h := NewHandlers(&fakeTodoService{}, testLogger())

	resp, err := h.CreateTodo(context.Background(), authorizedRequest(http.MethodPost, "/todos", "{"))
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateTodoStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		todoID     string
		serviceErr error
		want       int
	}{
		{name: "ok", todoID: "todo-1", want: http.StatusNoContent},
		{name: "missing id", todoID: "", want: http.StatusBadRequest},
		{name: "unknown item", todoID: "todo-2", serviceErr: fmt.Errorf("%w: todo-2", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "invalid payload", todoID: "todo-1", serviceErr: fmt.Errorf("%w: title", domain.ErrValidation), want: http.StatusBadRequest},
		{name: "storage down", todoID: "todo-1", serviceErr: domain.ErrStorageUnavailable, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(&fakeTodoService{err: tt.serviceErr}, testLogger())

			req := authorizedRequest(http.MethodPatch, "/todos/"+tt.todoID, `{"title":"after","done":true}`)
			if tt.todoID != "" {
				req.PathParameters = map[string]string{"id": tt.todoID}
			}

			resp, err := h.UpdateTodo(context.Background(), req)
			if err != nil {
				t.Fatalf("UpdateTodo returned error: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d; body: %s", resp.StatusCode, tt.want, resp.Body)
			}
		})
	}
}

func TestDeleteTodo(t *testing.T) {
	svc := &fakeTodoService{}
	h := NewHandlers(svc, testLogger())

	req := authorizedRequest(http.MethodDelete, "/todos/todo-1", "")
	req.PathParameters = map[string]string{"id": "todo-1"}

	resp, err := h.DeleteTodo(context.Background(), req)
	if err != nil {
		t.Fatalf("DeleteTodo returned error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if svc.deletedID != "todo-1" {
		t.Errorf("deleted ID = %q, want todo-1", svc.deletedID)
	}
}

func TestGenerateUploadURL(t *testing.T) {
	svc := &fakeTodoService{uploadURL: "https://attachments.s3.amazonaws.com/todo-1?X-Amz-Expires=300"}
	h := NewHandlers(svc, testLogger())

	req := authorizedRequest(http.MethodPost, "/todos/todo-1/attachment", "")
	req.PathParameters = map[string]string{"id": "todo-1"}

	resp, err := h.GenerateUploadURL(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateUploadURL returned error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", resp.StatusCode, resp.Body)
	}

	var body struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.UploadURL != svc.uploadURL {
		t.Errorf("uploadUrl = %q, want %q", body.UploadURL, svc.uploadURL)
	}
}

func TestCallerIDWithoutAuthorizerContext(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("local"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{"authorization": "Bearer " + token},
	}

	userID, err := callerID(req)
	if err != nil {
		t.Fatalf("callerID returned error: %v", err)
	}
	if userID != "u1" {
		t.Errorf("callerID = %q, want u1", userID)
	}
}

func TestCallerIDRejectsAnonymousRequests(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no header"},
		{name: "wrong scheme", headers: map[string]string{"Authorization": "Basic abc"}},
		{name: "not a token", headers: map[string]string{"Authorization": "Bearer garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callerID(events.APIGatewayProxyRequest{Headers: tt.headers})
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}
