package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"spinsx-assets/internal/config"
	"spinsx-assets/internal/convert"
	"spinsx-assets/internal/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Image root to convert (default: public/assets/images/images)")
	output := flag.String("output", "", "WebP output directory (default: public/assets/images/webp)")
	size := flag.Int("size", 0, "Longest side in pixels, 0 keeps the original size")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	cfg, err := config.Setup(*configFile, config.Flags{
		BaseDir:   *baseDir,
		ThumbSize: *size,
		Workers:   *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.WebPDir = *output
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	jobs, err := convert.Collect(cfg.BaseDir, cfg.WebPDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(jobs) == 0 {
		fmt.Println("No images to convert.")
		os.Exit(0)
	}

	fmt.Printf("Images: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.WebPDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := convert.Run(convert.Config{
		SourceDir: cfg.BaseDir,
		OutputDir: cfg.WebPDir,
		ThumbSize: cfg.ThumbSize,
		Workers:   cfg.Workers,
	}, jobs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := 0
	for _, r := range results {
		if r.Success {
			continue
		}
		failed++
		if failed <= 20 {
			log.Error().Str("source", r.Source).Msg(r.Error)
		}
	}

	fmt.Printf("Converted: %d/%d\n", len(results)-failed, len(results))

	if failed > 0 {
		os.Exit(1)
	}
}
