package main

import (
	"github.com/joho/godotenv"

	"discovery-insights-go/internal/cmd"
)

func main() {
	_ = godotenv.Load() // loads .env

	cmd.Execute()
}
