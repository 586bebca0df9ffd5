package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"podder.dev/internal/config"
	"podder.dev/internal/handlers"
	"podder.dev/internal/logging"
	"podder.dev/internal/services"
	"podder.dev/internal/store"
)

var configFile = flag.String("config", "", "Configuration file path")

func main() {
	flag.Usage = func() {
		fmt.Println("Usage: generate [-config file] <output-dir>")
		fmt.Println("       writes the resume PDF for the portfolio in the configured data path")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	outputDir := flag.Arg(0)

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Storage.DataPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open data directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating resume from %s...\n", cfg.Storage.DataPath)

	rs := services.NewResumeService(st.Portfolio, st.Projects, cfg.Renderer(handlers.AppName), nil, logger)
	file, err := rs.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(outputDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("resume written", zap.String("path", path), zap.Int("bytes", len(file.Data)))
	fmt.Printf("  Created %s (%d bytes)\n", file.Name, len(file.Data))
	fmt.Println("Done!")
}
