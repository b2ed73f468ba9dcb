package main

import (
	"flag"
	"log"

	"souqly_backend/internal/app"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
