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

	handler, err := lambdaapi.BootstrapAuthorizer(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize authorizer: %v", err)
	}

	lambda.Start(handler.HandleRequest)
}
