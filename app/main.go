package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/altamira-consulting/content-engine/app/api"
	"github.com/altamira-consulting/content-engine/app/cfg"
	"github.com/altamira-consulting/content-engine/app/content"
	"github.com/altamira-consulting/content-engine/app/recommend"
	"github.com/altamira-consulting/content-engine/app/search"
	"github.com/altamira-consulting/content-engine/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Println("Starting Content Engine server...")

	// Load content into the in-memory store
	log.Printf("Loading content from %s...", appCfg.ContentDir)
	store := content.NewStore(appCfg.ContentDir)
	if err := store.Run(); err != nil {
		log.Fatal("Failed to load content:", err)
	}
	posts, episodes := store.Counts()
	log.Printf("Loaded %d blog posts and %d podcast episodes", posts, episodes)

	// Initialize the scoring core
	searcher := search.NewSearcher(search.NewScorer(search.DefaultWeights()))
	recScorer := recommend.NewScorer(recommend.DefaultWeights())

	// Shared HTTP client for content imports
	httpClient := &http.Client{Timeout: 30 * time.Second}
	importer := content.NewImporter()

	// Initialize and start the background scheduler
	log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(store, importer, httpClient)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(store, searcher, recScorer, importer, httpClient, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Search:          http://localhost:%s/api/search?q=<query>", appCfg.Port)
		log.Printf("  Recommendations: http://localhost:%s/api/recommendations?id=<content-id>", appCfg.Port)
		log.Printf("  Trending:        http://localhost:%s/api/trending", appCfg.Port)
		log.Printf("  Blog RSS:        http://localhost:%s/feed.xml", appCfg.Port)
		log.Printf("  Health check:    http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:      http://localhost:%s/stats", appCfg.Port)

		if appCfg.APIAccessKey != "" {
			log.Printf("  Reload content:  http://localhost:%s/api/admin/content/reload (POST, requires API key)", appCfg.Port)
			log.Printf("  Import content:  http://localhost:%s/api/admin/content/import (POST, requires API key)", appCfg.Port)
		} else {
			log.Printf("  Admin endpoints: DISABLED (API_ACCESS_KEY not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Content Engine server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Background scheduler stopped")

	log.Println("Content Engine server shutdown complete")
}
