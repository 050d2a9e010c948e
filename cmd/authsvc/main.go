package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/AhmadAkmal83/jwt-sandbox/internal/app"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/config"
)

func main() {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
