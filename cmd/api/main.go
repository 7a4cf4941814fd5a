package main

import (
	"context"
	"os"

	"bookcatalog-backend/pkg/container"
	"bookcatalog-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()

	c, err := container.New(ctx)
	if err != nil {
		logger.Error("failed to initialize application", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	if err := serve(c); err != nil {
		logger.Error("server stopped with error", err)
		os.Exit(1)
	}
}
