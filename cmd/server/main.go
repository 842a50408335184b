package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tasklet/internal/auth"
	"tasklet/internal/config"
	"tasklet/internal/handler"
	"tasklet/internal/lambdaapi"
	"tasklet/internal/middleware"
	"tasklet/internal/repository/dynamo"
	"tasklet/internal/service"
	"tasklet/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := lambdaapi.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table", cfg.TodosTable,
	)

	// Token verifier backed by the issuer's key set
	if cfg.JWKSURL == "" {
		log.Fatal("JWKS_URL is not configured")
	}
	keySet := auth.NewKeySetClient(cfg.JWKSURL, 10*time.Minute, logger)
	verifier := auth.NewJWKSVerifier(keySet, cfg.TokenIssuer, logger)

	// AWS clients (honors AWS_ENDPOINT_URL overrides for local stacks)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
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
	todoHandler := handler.NewTodoHandler(todoService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", todoHandler.HealthCheck)

	mux.HandleFunc("GET /todos", todoHandler.ListTodos)
	mux.HandleFunc("POST /todos", todoHandler.CreateTodo)
	mux.HandleFunc("PATCH /todos/{id}", todoHandler.UpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", todoHandler.DeleteTodo)
	mux.HandleFunc("POST /todos/{id}/attachment", todoHandler.GenerateUploadURL)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
