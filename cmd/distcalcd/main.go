// Command distcalcd serves the distribution calculator over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/zephyrtronium/distexpr/internal/config"
	"github.com/zephyrtronium/distexpr/internal/server"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "YAML configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetLogLoggerLevel(level)

	s := server.New(cfg)
	slog.Info("Starting distcalcd", "port", cfg.Port, "max_pads", cfg.MaxPads)
	if err := s.Start(context.Background()); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
