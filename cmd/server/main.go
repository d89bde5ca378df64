package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"paystructure/internal/app/server"
	"paystructure/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, config.Load())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		log.Printf("close storage: %v", err)
	}
	if runErr != nil {
		log.Fatalf("server failed: %v", runErr)
	}
}
