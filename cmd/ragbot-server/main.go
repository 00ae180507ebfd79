// Package main RAG Chatbot API Server
//
//	@title			RAG Chatbot API
//	@version		1.0
//	@description	Multi-bot retrieval-augmented chatbot: bots, documents, chat and analytics
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "ragbot/docs" // This imports the docs package to initialize swagger
	"ragbot/internal/config"
	"ragbot/internal/server"
)

func main() {
	log.Println("Starting RAG chatbot server...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
}
