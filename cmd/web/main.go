package main

import (
	"lifemed_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	app.Run()
}
