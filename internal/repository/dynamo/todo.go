package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tasklet/internal/domain"
	"tasklet/internal/domain/models"
	"tasklet/internal/domain/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RepositoryConfig holds the shared dependencies of DynamoDB
// repositories.
type RepositoryConfig struct {
	Client Client
	Table  string
	Index  string // per-user createdAt listing index
	Logger *slog.Logger
}

// todoRepository implements repositories.TodoRepository on a DynamoDB
// table keyed by (userId, todoId) with a local secondary index on
// (userId, createdAt).
type todoRepository struct {
	client Client
	table  string
	index  string
	logger *slog.Logger
}

// NewTodoRepository creates the DynamoDB-backed item store gateway.
func NewTodoRepository(cfg *RepositoryConfig) repositories.TodoRepository {
	return &todoRepository{
		client: cfg.Client,
		table:  cfg.Table,
		index:  cfg.Index,
		logger: cfg.Logger,
	}
}

func (r *todoRepository) List(ctx context.Context, userID string) ([]models.Todo, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(r.index),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		// Newest first: the index range key is createdAt.
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		r.logger.Error("todo list query failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: list todos: %v", domain.ErrStorageUnavailable, err)
	}

	todos := []models.Todo{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &todos); err != nil {
		r.logger.Error("todo list unmarshal failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: decode todos: %v", domain.ErrStorageUnavailable, err)
	}

	return todos, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *models.Todo) error {
	item, err := attributevalue.MarshalMap(todo)
	if err != nil {
		return fmt.Errorf("%w: encode todo: %v", domain.ErrStorageUnavailable, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("todo create failed", "todo_id", todo.TodoID, "user_id", todo.UserID, "error", err)
		return fmt.Errorf("%w: create todo: %v", domain.ErrStorageUnavailable, err)
	}

	r.logger.Info("todo created", "todo_id", todo.TodoID, "user_id", todo.UserID)
	return nil
}

func (r *todoRepository) Update(ctx context.Context, userID, todoID string, update *models.TodoUpdate) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              itemKey(userID, todoID),
		UpdateExpression: aws.String("SET #title = :title, #dueDate = :dueDate, #done = :done"),
		// The update must not upsert: a miss on (userId, todoId) is
		// reported, never materialized as a new item.
		ConditionExpression: aws.String("attribute_exists(todoId)"),
		ExpressionAttributeNames: map[string]string{
			"#title":   "title",
			"#dueDate": "dueDate",
			"#done":    "done",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":   &types.AttributeValueMemberS{Value: update.Title},
			":dueDate": &types.AttributeValueMemberS{Value: update.DueDate},
			":done":    &types.AttributeValueMemberBOOL{Value: update.Done},
		},
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return fmt.Errorf("%w: todo %s", domain.ErrNotFound, todoID)
		}
		r.logger.Error("todo update failed", "todo_id", todoID, "user_id", userID, "error", err)
		return fmt.Errorf("%w: update todo: %v", domain.ErrStorageUnavailable, err)
	}

	r.logger.Info("todo updated", "todo_id", todoID, "user_id", userID)
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, userID, todoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey(userID, todoID),
	})
	if err != nil {
		r.logger.Error("todo delete failed", "todo_id", todoID, "user_id", userID, "error", err)
		return fmt.Errorf("%w: delete todo: %v", domain.ErrStorageUnavailable, err)
	}

	r.logger.Info("todo deleted", "todo_id", todoID, "user_id", userID)
	return nil
}

func (r *todoRepository) ConfirmAttachment(ctx context.Context, userID, todoID, url string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 itemKey(userID, todoID),
		UpdateExpression:    aws.String("SET attachmentUrl = :attachmentUrl"),
		ConditionExpression: aws.String("attribute_exists(todoId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":attachmentUrl": &types.AttributeValueMemberS{Value: url},
		},
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return fmt.Errorf("%w: todo %s", domain.ErrNotFound, todoID)
		}
		r.logger.Error("attachment url update failed", "todo_id", todoID, "user_id", userID, "error", err)
		return fmt.Errorf("%w: confirm attachment: %v", domain.ErrStorageUnavailable, err)
	}

	r.logger.Info("attachment url set", "todo_id", todoID, "user_id", userID)
	return nil
}

func itemKey(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}
