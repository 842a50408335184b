package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"tasklet/internal/config"
	"tasklet/internal/domain/models"
	"tasklet/internal/lambdaapi"
	"tasklet/internal/repository/dynamo"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fixture is the YAML shape of a seed file:
//
//	users:
//	  - userId: u1
//	    todos:
//	      - title: Buy milk
//	        dueDate: "2024-02-01"
//	        done: false
type fixture struct {
	Users []struct {
		UserID string `yaml:"userId"`
		Todos  []struct {
			Title   string `yaml:"title"`
			DueDate string `yaml:"dueDate"`
			Done    bool   `yaml:"done"`
		} `yaml:"todos"`
	} `yaml:"users"`
}

func main() {
	file := flag.String("file", os.Getenv("SEED_FILE"), "YAML fixture file to load")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: fixtures are dev data, never for production tables
	if cfg.Environment == "prod" {
		log.Fatal("BLOCKED: cannot seed in production environment")
	}

	if *file == "" {
		log.Fatal("no fixture file: pass -file or set SEED_FILE")
	}

	logger := lambdaapi.NewLogger(cfg.Environment)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read fixture: %v", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)

	var todos []models.Todo
	for _, user := range fx.Users {
		for _, t := range user.Todos {
			todos = append(todos, models.Todo{
				TodoID:    uuid.NewString(),
				UserID:    user.UserID,
				Title:     t.Title,
				DueDate:   t.DueDate,
				Done:      t.Done,
				CreatedAt: time.Now().UTC().Format(time.RFC3339),
			})
		}
	}

	if err := dynamo.BatchCreate(ctx, client, cfg.TodosTable, todos, logger); err != nil {
		log.Fatalf("Failed to seed table: %v", err)
	}

	logger.Info("seed complete", "table", cfg.TodosTable, "todos", len(todos))
}
