package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"tasklet/internal/domain"
	"tasklet/internal/domain/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// batchMax is DynamoDB's BatchWriteItem limit.
const batchMax = 25

// BatchCreate writes todos to the table in BatchWriteItem chunks. Used
// by the dev seeder; the request path always writes single items.
func BatchCreate(ctx context.Context, client Client, table string, todos []models.Todo, logger *slog.Logger) error {
	for start := 0; start < len(todos); start += batchMax {
		end := min(start+batchMax, len(todos))

		writes := make([]types.WriteRequest, 0, end-start)
		for _, todo := range todos[start:end] {
			item, err := attributevalue.MarshalMap(todo)
			if err != nil {
				return fmt.Errorf("%w: encode todo %s: %v", domain.ErrStorageUnavailable, todo.TodoID, err)
			}
			writes = append(writes, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: writes},
		})
		if err != nil {
			logger.Error("batch write failed", "table", table, "error", err)
			return fmt.Errorf("%w: batch write: %v", domain.ErrStorageUnavailable, err)
		}
		if unprocessed := len(out.UnprocessedItems[table]); unprocessed > 0 {
			return fmt.Errorf("%w: %d items unprocessed", domain.ErrStorageUnavailable, unprocessed)
		}

		logger.Info("batch written", "table", table, "count", len(writes))
	}

	return nil
}
