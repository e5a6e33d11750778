package main

import (
	"flag"
	"fmt"
	"os"

	"spinsx-assets/internal/config"
	"spinsx-assets/internal/imagemap"
	"spinsx-assets/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Image root to scan (default: public/assets/images/images)")
	output := flag.String("output", "", "Output JSON file (default: public/assets/imageMap.json)")

	flag.Parse()

	cfg, err := config.Setup(*configFile, config.Flags{BaseDir: *baseDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.ImageMapFile = *output
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	fmt.Println("Scanning images...")
	m, err := imagemap.Build(cfg.BaseDir, cfg.WebPrefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := imagemap.Write(cfg.ImageMapFile, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated image map with %d items at %s\n", len(m), cfg.ImageMapFile)
}
