package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/florenda/florenda-api/internal/app/api"
)

func main() {
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("florenda api exited: %v", err)
	}
}
