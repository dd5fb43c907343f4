package main

import (
	"log"

	"github.com/akasharts888/audio-transcriptor/internal/api"
	"github.com/akasharts888/audio-transcriptor/pkg/utils"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	// Start
	if err := api.Start(cfg); err != nil {
		log.Fatalf("[API-MAIN]: %v", err)
	}
}
