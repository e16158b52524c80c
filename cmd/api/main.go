package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/api"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Load process-wide linguistic resources once, before any job starts.
	// They are read-only from here on and shared across jobs.
	engine, err := nlp.ForName(cfg.Lexicon.Normalizer)
	if err != nil {
		log.Fatalf("failed to initialize language engine: %v", err)
	}
	vocab, err := lexicon.Load(cfg.Lexicon.VocabularyPath)
	if err != nil {
		log.Fatalf("failed to load vocabulary: %v", err)
	}
	log.Printf("vocabulary loaded: %d words (%s)", vocab.Len(), cfg.Lexicon.VocabularyPath)

	extractor := extract.NewExtractor(engine, vocab, lexicon.Stopwords())
	service := services.NewExtractionService(extractor)

	// Initialize router
	router := api.NewRouter(cfg, service)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
