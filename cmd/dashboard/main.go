package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"assetpulse/internal/app"
)

// Embedded dashboard page
//
//go:embed all:web
var webFiles embed.FS

func main() {
	configFile := flag.String("config", "", "path to optional YAML config file")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	var frontendFS fs.FS
	if sub, err := fs.Sub(webFiles, "web"); err == nil {
		frontendFS = sub
	} else {
		slog.Warn("Dashboard page embedding failed", slog.String("error", err.Error()))
	}

	if *port > 0 {
		os.Setenv("ASSETPULSE_SERVER_PORT", fmt.Sprintf("%d", *port))
	}

	application, err := app.NewApplication(*configFile, frontendFS)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
