package main

import (
	"flag"
	"log"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/server"
	"downloads-dashboard/internal/version"
)

func main() {
	log.Printf("downloads-dashboard %s", version.GetFullVersion())

	var configPath string
	flag.StringVar(&configPath, "config", "config.yml", "path to the config file")
	flag.StringVar(&configPath, "c", "config.yml", "path to the config file (shorthand)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
