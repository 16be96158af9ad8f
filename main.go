package main

import (
	"log"

	"github.com/joho/godotenv"

	"visitdedupe/internal/config"
	"visitdedupe/ui"
)

func main() {
	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("[Startup] date policy=%s, upload limit=%d MB, job TTL=%s",
		cfg.Dedupe.DatePolicy, cfg.Upload.MaxSizeBytes/(1024*1024), cfg.Jobs.TTL)

	server, err := ui.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
