// Command sheetrefresh is a Lambda function that reloads the sheet from the
// sheet API on an EventBridge schedule and stores it in DynamoDB.
//
// It is configured through SHEETSTORE_* environment variables; the storage
// backend is always dynamo.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/sheetstore/internal/app"
	"github.com/jacentio/sheetstore/internal/config"
	"github.com/jacentio/sheetstore/internal/logger"
	"github.com/jacentio/sheetstore/refresh"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Storage.Backend = config.BackendDynamo

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Source.URL == "" {
		log.Error("SHEETSTORE_SOURCE_URL is required")
		os.Exit(1)
	}

	s, backend, err := app.NewStore(ctx, cfg, log.Logger)
	if err != nil {
		log.Error("failed to open sheet store", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	handler := refresh.NewHandler(s, "", log.Logger)
	lambda.Start(handler.HandleScheduledRefresh)
}
