package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"spinsx-assets/internal/catalog"
	"spinsx-assets/internal/config"
	"spinsx-assets/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run builds the catalog and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("genitems", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Path to config.json file")
	baseDir := fs.String("base", "", "Image root containing BANNER/ and AVATARS/ (default: public/assets/images/images)")
	output := fs.String("output", "", "Output JSON file (default: public/assets/extraItems.json)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Setup(*configFile, config.Flags{BaseDir: *baseDir})
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *output != "" {
		cfg.OutputFile = *output
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat, stderr)

	scanner := catalog.NewScanner(cfg.BaseDir, cfg.WebPrefix)
	cat, err := catalog.Build(scanner, catalog.DefaultCategories)
	if err != nil {
		fmt.Fprintf(stderr, "Error scanning %s: %v\n", cfg.BaseDir, err)
		return 1
	}

	fmt.Fprintf(stdout, "Found %d banners and %d avatars.\n",
		cat.Counts[catalog.Banners.Dir], cat.Counts[catalog.Avatars.Dir])

	if err := catalog.Write(cfg.OutputFile, cat.Items); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved to %s\n", cfg.OutputFile)
	return 0
}
