package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/postwall/internal/server"
	"github.com/dmitrijs2005/postwall/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// missing .env is fine, config falls back to real env and flags
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
