package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/shopkeeper/internal/server"
	"github.com/dmitrijs2005/shopkeeper/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
