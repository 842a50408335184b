package main

import (
	"context"
	"log"

	"tasklet/internal/lambdaapi"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	handlers, err := lambdaapi.Bootstrap(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize function: %v", err)
	}

	lambda.Start(handlers.CreateTodo)
}
