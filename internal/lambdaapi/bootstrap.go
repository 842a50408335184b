package lambdaapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tasklet/internal/auth"
	"tasklet/internal/config"
	"tasklet/internal/repository/dynamo"
	"tasklet/internal/service"
	"tasklet/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// keySetTTL bounds how long the authorizer reuses a fetched key set.
const keySetTTL = 10 * time.Minute

// NewLogger builds the process-wide structured logger.
func NewLogger(environment string) *slog.Logger {
	logLevel := slog.LevelInfo
	if environment == "dev" {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// Bootstrap wires the request handlers for one Lambda process: config,
// logging, AWS clients, item store gateway, attachment store, service.
// Called once from main before lambda.Start; every invocation then
// reuses the same injected dependencies.
func Bootstrap(ctx context.Context) (*Handlers, error) {
	cfg := config.Load()
	logger := NewLogger(cfg.Environment)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	todoRepo := dynamo.NewTodoRepository(&dynamo.RepositoryConfig{
		Client: dynamodb.NewFromConfig(awsCfg),
		Table:  cfg.TodosTable,
		Index:  cfg.CreatedAtIndex,
		Logger: logger,
	})

	attachments := storage.NewAttachmentStore(
		s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		cfg.AttachmentsBucket,
		cfg.SignedURLTTL,
		logger,
	)

	todoService := service.NewTodoService(todoRepo, attachments, logger)

	logger.Info("function initialized",
		"table", cfg.TodosTable,
		"bucket", cfg.AttachmentsBucket,
	)

	return NewHandlers(todoService, logger), nil
}

// BootstrapAuthorizer wires the gateway authorizer function.
func BootstrapAuthorizer(ctx context.Context) (*AuthorizerHandler, error) {
	cfg := config.Load()
	logger := NewLogger(cfg.Environment)

	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("JWKS_URL is not configured")
	}

	keySet := auth.NewKeySetClient(cfg.JWKSURL, keySetTTL, logger)
	verifier := auth.NewJWKSVerifier(keySet, cfg.TokenIssuer, logger)
	authorizer := auth.NewAuthorizer(verifier, logger)

	logger.Info("authorizer initialized", "jwks_url", cfg.JWKSURL)

	return NewAuthorizerHandler(authorizer, logger), nil
}
