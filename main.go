package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"StampBoard/internal/config"
	"StampBoard/internal/logging"
	"StampBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a stampboard.yaml file (default: ./"+config.FileName+" if present)")
	debug := flag.Bool("debug", false, "log every placement and replay step")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Starting stamp board: spacing %v, max %d stamps", cfg.Engine.MinSpacing, cfg.Engine.MaxPlacements)

	if err := ui.RunApp(cfg); err != nil {
		log.Fatalf("Stamp board failed: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(".")
}
